package camera

import "context"

// merge overlays changed fields onto the current configuration. The camera
// rejects partial Set payloads for most commands, so setters read the full
// object first and send it back with only the requested fields replaced.
func merge(current, overlay Object) Object {
	out := make(Object, len(current)+len(overlay))
	for k, v := range current {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// MdAlarmSettings holds the fields of the motion detection configuration
// that can be changed. Nil fields are left untouched.
type MdAlarmSettings struct {
	Enable      *bool
	Sensitivity *int
}

// SetMdAlarm updates the motion detection configuration.
func (c *Client) SetMdAlarm(ctx context.Context, settings MdAlarmSettings) error {
	current, err := c.MdAlarm(ctx)
	if err != nil {
		return err
	}
	overlay := Object{}
	if settings.Enable != nil {
		overlay["enable"] = boolInt(*settings.Enable)
	}
	if settings.Sensitivity != nil {
		overlay["sens"] = []Object{{"id": 0, "val": *settings.Sensitivity}}
	}
	merged := merge(current, overlay)
	merged["channel"] = c.channel
	_, err = c.Execute(ctx, "SetMdAlarm", actionSet, Object{"MdAlarm": merged})
	return err
}

// SetAiCfg updates the AI detection type configuration.
func (c *Client) SetAiCfg(ctx context.Context, overlay Object) error {
	current, err := c.AiCfg(ctx)
	if err != nil {
		return err
	}
	merged := merge(current, overlay)
	param := Object{"AiDetectType": merged, "channel": c.channel}
	_, err = c.Execute(ctx, "SetAiCfg", actionSet, param)
	return err
}

// SetIrLights sets the infrared light mode ("Auto", "On" or "Off").
// The command accepts a minimal payload.
func (c *Client) SetIrLights(ctx context.Context, state string) error {
	param := Object{"IrLights": Object{
		"channel": c.channel,
		"state":   state,
	}}
	_, err := c.Execute(ctx, "SetIrLights", actionSet, param)
	return err
}

// WhiteLedSettings holds the spotlight fields that can be changed.
// Nil fields are left untouched.
type WhiteLedSettings struct {
	State      *int
	Mode       *int
	Brightness *int
}

// SetWhiteLed updates the white LED (spotlight) configuration.
func (c *Client) SetWhiteLed(ctx context.Context, settings WhiteLedSettings) error {
	current, err := c.WhiteLed(ctx)
	if err != nil {
		return err
	}
	overlay := Object{}
	if settings.State != nil {
		overlay["state"] = *settings.State
	}
	if settings.Mode != nil {
		overlay["mode"] = *settings.Mode
	}
	if settings.Brightness != nil {
		overlay["bright"] = *settings.Brightness
	}
	merged := merge(current, overlay)
	merged["channel"] = c.channel
	_, err = c.Execute(ctx, "SetWhiteLed", actionSet, Object{"WhiteLed": merged})
	return err
}

// SetPowerLed sets the power/status LED on (1) or off (0).
func (c *Client) SetPowerLed(ctx context.Context, state int) error {
	param := Object{"PowerLed": Object{
		"channel": c.channel,
		"state":   state,
	}}
	_, err := c.Execute(ctx, "SetPowerLed", actionSet, param)
	return err
}

// SetImage updates brightness, contrast and related image settings.
func (c *Client) SetImage(ctx context.Context, overlay Object) error {
	current, err := c.Image(ctx)
	if err != nil {
		return err
	}
	merged := merge(current, overlay)
	merged["channel"] = c.channel
	_, err = c.Execute(ctx, "SetImage", actionSet, Object{"Image": merged})
	return err
}

// SetIsp updates day/night mode and other ISP settings.
func (c *Client) SetIsp(ctx context.Context, overlay Object) error {
	current, err := c.Isp(ctx)
	if err != nil {
		return err
	}
	merged := merge(current, overlay)
	merged["channel"] = c.channel
	_, err = c.Execute(ctx, "SetIsp", actionSet, Object{"Isp": merged})
	return err
}

// SetEnc updates the encoding configuration of one stream. Stream is
// StreamMain or StreamSub and overlay fields replace the matching fields
// of that stream's sub-object.
func (c *Client) SetEnc(ctx context.Context, stream string, overlay Object) error {
	current, err := c.Enc(ctx)
	if err != nil {
		return err
	}
	key := "mainStream"
	if stream == StreamSub {
		key = "subStream"
	}
	merged := merge(current, nil)
	merged["channel"] = c.channel
	if streamCfg := nested(current, key); streamCfg != nil {
		merged[key] = merge(streamCfg, overlay)
	}
	_, err = c.Execute(ctx, "SetEnc", actionSet, Object{"Enc": merged})
	return err
}

// SetAudioCfg updates mic volume, speaker volume and audio recording.
func (c *Client) SetAudioCfg(ctx context.Context, overlay Object) error {
	current, err := c.AudioCfg(ctx)
	if err != nil {
		return err
	}
	merged := merge(current, overlay)
	merged["channel"] = c.channel
	_, err = c.Execute(ctx, "SetAudioCfg", actionSet, Object{"AudioCfg": merged})
	return err
}

// SetAudioAlarm enables or disables the audio alarm.
func (c *Client) SetAudioAlarm(ctx context.Context, enable bool) error {
	param := Object{"AudioAlarm": Object{
		"channel": c.channel,
		"enable":  boolInt(enable),
	}}
	_, err := c.Execute(ctx, "SetAudioAlarm", actionSet, param)
	return err
}

// SirenParams controls a manual siren trigger. Mode defaults to the
// camera's manual trigger mode; Duration, when nonzero, limits how many
// times the siren sounds.
type SirenParams struct {
	Mode         string
	ManualSwitch int
	Duration     int
}

// PlayAudioAlarm triggers or stops the siren manually.
func (c *Client) PlayAudioAlarm(ctx context.Context, params SirenParams) error {
	mode := params.Mode
	if mode == "" {
		// The firmware spells the manual mode "manul".
		mode = "manul"
	}
	alarm := Object{
		"channel":       c.channel,
		"alarm_mode":    mode,
		"manual_switch": params.ManualSwitch,
	}
	if params.Duration > 0 {
		alarm["times"] = params.Duration
	}
	_, err := c.Execute(ctx, "AudioAlarmPlay", actionSet, Object{"AudioAlarmPlay": alarm})
	return err
}

// SetPush enables or disables push notifications. The toggle commands
// accept a minimal channel+enable payload, so no read-modify-write cycle
// is needed.
func (c *Client) SetPush(ctx context.Context, enable bool) error {
	return c.setToggle(ctx, "SetPush", "Push", enable)
}

// SetFtp enables or disables FTP upload.
func (c *Client) SetFtp(ctx context.Context, enable bool) error {
	return c.setToggle(ctx, "SetFtp", "Ftp", enable)
}

// SetEmail enables or disables email alerts.
func (c *Client) SetEmail(ctx context.Context, enable bool) error {
	return c.setToggle(ctx, "SetEmail", "Email", enable)
}

// SetRec enables or disables recording.
func (c *Client) SetRec(ctx context.Context, enable bool) error {
	return c.setToggle(ctx, "SetRec", "Rec", enable)
}

func (c *Client) setToggle(ctx context.Context, cmd, key string, enable bool) error {
	param := Object{key: Object{
		"channel": c.channel,
		"enable":  boolInt(enable),
	}}
	_, err := c.Execute(ctx, cmd, actionSet, param)
	return err
}

// SetNtp updates the NTP configuration. NTP is device-wide, so no channel
// field is attached.
func (c *Client) SetNtp(ctx context.Context, overlay Object) error {
	current, err := c.Ntp(ctx)
	if err != nil {
		return err
	}
	merged := merge(current, overlay)
	_, err = c.Execute(ctx, "SetNtp", actionSet, Object{"Ntp": merged})
	return err
}

// SetTime replaces the time configuration. The caller supplies the full
// parameter object with Time and optionally Dst sub-objects; the camera
// rejects partial payloads for this command.
func (c *Client) SetTime(ctx context.Context, timeCfg Object) error {
	_, err := c.Execute(ctx, "SetTime", actionSet, timeCfg)
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
