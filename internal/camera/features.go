package camera

import "context"

// Typed getters, one per feature group. Each wraps Execute with the fixed
// command name and channel-scoped parameter and unwraps one nesting level.

// DeviceInfo returns model, firmware, serial and related device metadata.
func (c *Client) DeviceInfo(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetDevInfo", actionGet, nil)
	if err != nil {
		return nil, err
	}
	return unwrap(value, "DevInfo"), nil
}

// BatteryInfo returns charge percentage, charging state and temperature.
// Mains-powered cameras report this command as unsupported.
func (c *Client) BatteryInfo(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetBatteryInfo", actionGet, nil)
	if err != nil {
		return nil, err
	}
	return unwrap(value, "BatteryInfo"), nil
}

// StorageInfo returns one object per storage device (SD card, HDD).
func (c *Client) StorageInfo(ctx context.Context) ([]Object, error) {
	value, err := c.Execute(ctx, "GetHddInfo", actionGet, nil)
	if err != nil {
		return nil, err
	}
	return unwrapList(value, "HddInfo"), nil
}

// LocalLink returns IP, MAC, link type and DNS settings.
func (c *Client) LocalLink(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetLocalLink", actionGet, nil)
	if err != nil {
		return nil, err
	}
	return unwrap(value, "LocalLink"), nil
}

// NetPort returns the HTTP/HTTPS/RTSP/RTMP/ONVIF port table.
func (c *Client) NetPort(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetNetPort", actionGet, nil)
	if err != nil {
		return nil, err
	}
	return unwrap(value, "NetPort"), nil
}

// WifiSignal returns the WiFi signal strength. Wired cameras report the
// command as unsupported; callers should treat that as "unavailable", not
// as a failure.
func (c *Client) WifiSignal(ctx context.Context) (int, error) {
	value, err := c.Execute(ctx, "GetWifiSignal", actionGet, nil)
	if err != nil {
		return 0, err
	}
	return intField(value, "wifiSignal"), nil
}

// TimeConfig returns the Time and Dst sub-objects.
func (c *Client) TimeConfig(ctx context.Context) (Object, error) {
	return c.Execute(ctx, "GetTime", actionGet, nil)
}

// Ability returns the capability descriptor for the logged-in user.
func (c *Client) Ability(ctx context.Context) (Object, error) {
	param := Object{"User": Object{"userName": c.username}}
	value, err := c.Execute(ctx, "GetAbility", actionGet, param)
	if err != nil {
		return nil, err
	}
	return unwrap(value, "Ability"), nil
}

// MdAlarm returns the motion detection configuration.
func (c *Client) MdAlarm(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetMdAlarm", actionGet, c.channelParam())
	if err != nil {
		return nil, err
	}
	return unwrap(value, "MdAlarm"), nil
}

// MdState returns the current motion trigger state.
func (c *Client) MdState(ctx context.Context) (Object, error) {
	return c.Execute(ctx, "GetMdState", actionGet, c.channelParam())
}

// AiState returns the per-type AI detection states (person, vehicle, ...).
func (c *Client) AiState(ctx context.Context) (Object, error) {
	return c.Execute(ctx, "GetAiState", actionGet, c.channelParam())
}

// AiCfg returns the AI detection type configuration.
func (c *Client) AiCfg(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetAiCfg", actionGet, c.channelParam())
	if err != nil {
		return nil, err
	}
	return unwrap(value, "AiDetectType"), nil
}

// IrLights returns the infrared light state and mode.
func (c *Client) IrLights(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetIrLights", actionGet, c.channelParam())
	if err != nil {
		return nil, err
	}
	return unwrap(value, "IrLights"), nil
}

// WhiteLed returns the white LED (spotlight) state, mode and brightness.
func (c *Client) WhiteLed(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetWhiteLed", actionGet, c.channelParam())
	if err != nil {
		return nil, err
	}
	return unwrap(value, "WhiteLed"), nil
}

// PowerLed returns the power/status LED state.
func (c *Client) PowerLed(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetPowerLed", actionGet, c.channelParam())
	if err != nil {
		return nil, err
	}
	return unwrap(value, "PowerLed"), nil
}

// Image returns brightness, contrast, saturation and related settings.
func (c *Client) Image(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetImage", actionGet, c.channelParam())
	if err != nil {
		return nil, err
	}
	return unwrap(value, "Image"), nil
}

// Isp returns day/night mode, exposure and other ISP settings.
func (c *Client) Isp(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetIsp", actionGet, c.channelParam())
	if err != nil {
		return nil, err
	}
	return unwrap(value, "Isp"), nil
}

// Enc returns the main/sub stream encoding configuration.
func (c *Client) Enc(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetEnc", actionGet, c.channelParam())
	if err != nil {
		return nil, err
	}
	return unwrap(value, "Enc"), nil
}

// AudioCfg returns mic volume, speaker volume and audio recording state.
func (c *Client) AudioCfg(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetAudioCfg", actionGet, c.channelParam())
	if err != nil {
		return nil, err
	}
	return unwrap(value, "AudioCfg"), nil
}

// AudioAlarm returns the audio alarm configuration.
func (c *Client) AudioAlarm(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetAudioAlarm", actionGet, c.channelParam())
	if err != nil {
		return nil, err
	}
	return unwrap(value, "AudioAlarm"), nil
}

// Rec returns the recording configuration.
func (c *Client) Rec(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetRec", actionGet, c.channelParam())
	if err != nil {
		return nil, err
	}
	return unwrap(value, "Rec"), nil
}

// Push returns the push notification configuration.
func (c *Client) Push(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetPush", actionGet, c.channelParam())
	if err != nil {
		return nil, err
	}
	return unwrap(value, "Push"), nil
}

// Ftp returns the FTP upload configuration.
func (c *Client) Ftp(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetFtp", actionGet, c.channelParam())
	if err != nil {
		return nil, err
	}
	return unwrap(value, "Ftp"), nil
}

// Email returns the email alert configuration.
func (c *Client) Email(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetEmail", actionGet, c.channelParam())
	if err != nil {
		return nil, err
	}
	return unwrap(value, "Email"), nil
}

// Ntp returns the NTP server configuration.
func (c *Client) Ntp(ctx context.Context) (Object, error) {
	value, err := c.Execute(ctx, "GetNtp", actionGet, nil)
	if err != nil {
		return nil, err
	}
	return unwrap(value, "Ntp"), nil
}

// Users returns the configured user accounts.
func (c *Client) Users(ctx context.Context) ([]Object, error) {
	value, err := c.Execute(ctx, "GetUser", actionGet, nil)
	if err != nil {
		return nil, err
	}
	return unwrapList(value, "User"), nil
}

// OnlineSessions returns the sessions currently logged into the camera.
func (c *Client) OnlineSessions(ctx context.Context) ([]Object, error) {
	value, err := c.Execute(ctx, "GetOnline", actionGet, nil)
	if err != nil {
		return nil, err
	}
	return unwrapList(value, "Online"), nil
}

// CheckFirmware asks the camera whether a firmware update is available.
func (c *Client) CheckFirmware(ctx context.Context) (Object, error) {
	return c.Execute(ctx, "CheckFirmware", actionGet, nil)
}

// Reboot restarts the camera.
func (c *Client) Reboot(ctx context.Context) error {
	_, err := c.Execute(ctx, "Reboot", actionGet, nil)
	return err
}

// UpgradeOnline starts an online firmware upgrade.
func (c *Client) UpgradeOnline(ctx context.Context) error {
	_, err := c.Execute(ctx, "UpgradeOnline", actionGet, nil)
	return err
}

// TestFtp asks the camera to verify its FTP upload settings.
func (c *Client) TestFtp(ctx context.Context) error {
	_, err := c.Execute(ctx, "TestFtp", actionGet, c.channelParam())
	return err
}

// TestEmail asks the camera to send a test email.
func (c *Client) TestEmail(ctx context.Context) error {
	_, err := c.Execute(ctx, "TestEmail", actionGet, c.channelParam())
	return err
}

// AddUser creates a user account. Level is "admin" or "guest".
func (c *Client) AddUser(ctx context.Context, username, password, level string) error {
	param := Object{"User": Object{
		"userName": username,
		"password": password,
		"level":    level,
	}}
	_, err := c.Execute(ctx, "AddUser", actionSet, param)
	return err
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	param := Object{"User": Object{"userName": username}}
	_, err := c.Execute(ctx, "DelUser", actionSet, param)
	return err
}

// intField reads a numeric field from a decoded JSON object. JSON numbers
// decode as float64.
func intField(value Object, key string) int {
	if f, ok := value[key].(float64); ok {
		return int(f)
	}
	return 0
}
