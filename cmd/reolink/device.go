package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reolink-cli/reolink/internal/camera"
)

var infoFields = []fieldMap{
	{"name", "Name"},
	{"model", "Model"},
	{"firmVer", "Firmware"},
	{"hardVer", "Hardware"},
	{"serial", "Serial"},
	{"uid", "UID"},
	{"channelNum", "Channels"},
	{"buildDay", "Build Date"},
	{"cfgVer", "Config Version"},
	{"detail", "Detail"},
	{"pakSuffix", "Package Suffix"},
	{"exactType", "Type"},
	{"wifi", "WiFi"},
	{"IOInputNum", "IO Inputs"},
	{"IOOutputNum", "IO Outputs"},
	{"diskNum", "Disk Count"},
}

func newInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show device information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				raw, err := cam.DeviceInfo(ctx)
				if err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(raw)
				}
				f.Block("Device Info", pickFields(raw, infoFields))
				return nil
			})
		},
	}
}

var (
	chargeStatus  = map[int]string{0: "Not Charging", 1: "Charging"}
	sleepState    = map[int]string{0: "Awake", 1: "Sleeping", 2: "Deep Sleep"}
	adapterStatus = map[int]string{0: "Disconnected", 1: "Connected"}
)

func newBatteryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "battery",
		Short: "Show battery status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				raw, err := cam.BatteryInfo(ctx)
				if err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(raw)
				}
				var fields []field
				if v, ok := raw["batteryPercent"]; ok {
					fields = append(fields, field{"Battery", formatValue(v) + "%"})
				}
				if v, ok := raw["chargeStatus"]; ok {
					fields = append(fields, field{"Charging", lookupState(chargeStatus, v)})
				}
				if v, ok := raw["temperature"]; ok {
					fields = append(fields, field{"Temperature", formatValue(v) + "°C"})
				}
				if v, ok := raw["lowPower"]; ok {
					fields = append(fields, field{"Low Power", formatValue(v)})
				}
				if v, ok := raw["sleepState"]; ok {
					fields = append(fields, field{"Sleep State", lookupState(sleepState, v)})
				}
				if v, ok := raw["adapterStatus"]; ok {
					fields = append(fields, field{"Adapter", lookupState(adapterStatus, v)})
				}
				f.Block("Battery Status", fields)
				return nil
			})
		},
	}
}

func lookupState(names map[int]string, v any) string {
	if name, ok := names[intValue(v)]; ok {
		return name
	}
	return formatValue(v)
}

func newStorageCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "storage",
		Short: "Show storage information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				disks, err := cam.StorageInfo(ctx)
				if err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(disks)
				}
				if len(disks) == 0 {
					f.Block("Storage", []field{{"Status", "No storage devices found"}})
					return nil
				}
				for i, disk := range disks {
					title := "Storage"
					if len(disks) > 1 {
						title = fmt.Sprintf("Storage (Disk %d)", i)
					}
					var fields []field
					if v, ok := disk["capacity"]; ok {
						fields = append(fields, field{"Capacity", formatValue(v) + " GB"})
					}
					if v, ok := disk["mount"]; ok {
						mounted := "No"
						if intValue(v) == 1 {
							mounted = "Yes"
						}
						fields = append(fields, field{"Mounted", mounted})
					}
					if v, ok := disk["size"]; ok {
						fields = append(fields, field{"Total Size", formatValue(v) + " GB"})
					}
					if v, ok := disk["used"]; ok {
						fields = append(fields, field{"Used", formatValue(v) + " GB"})
					}
					if v, ok := disk["free"]; ok {
						fields = append(fields, field{"Free", formatValue(v) + " GB"})
					}
					if v, ok := disk["storageType"]; ok {
						fields = append(fields, field{"Type", formatValue(v)})
					}
					if v, ok := disk["overWrite"]; ok {
						fields = append(fields, field{"Overwrite", enabledDisabled(v)})
					}
					f.Block(title, fields)
					if i < len(disks)-1 {
						f.Line("")
					}
				}
				return nil
			})
		},
	}
}

func newNetworkCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "network",
		Short: "Show network information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				link, err := cam.LocalLink(ctx)
				if err != nil {
					return err
				}
				ports, err := cam.NetPort(ctx)
				if err != nil {
					return err
				}
				// WiFi signal is absent on wired cameras.
				wifiSignal := -1
				if signal, err := cam.WifiSignal(ctx); err == nil {
					wifiSignal = signal
				} else if !camera.IsUnsupported(err) {
					return err
				}

				f := a.formatter()
				if f.jsonMode {
					data := camera.Object{"localLink": link, "ports": ports}
					if wifiSignal >= 0 {
						data["wifiSignal"] = wifiSignal
					}
					return f.JSON(data)
				}

				fields := pickFields(link, []fieldMap{
					{"activeLink", "Connection"},
					{"mac", "MAC"},
					{"type", "IP Mode"},
				})
				if static, ok := link["static"].(map[string]any); ok {
					fields = append(fields, pickFields(camera.Object(static), []fieldMap{
						{"ip", "IP"},
						{"mask", "Subnet"},
						{"gateway", "Gateway"},
					})...)
				}
				if dns, ok := link["dns"].(map[string]any); ok {
					fields = append(fields, pickFields(camera.Object(dns), []fieldMap{
						{"dns1", "DNS 1"},
						{"dns2", "DNS 2"},
					})...)
				}
				if wifiSignal >= 0 {
					fields = append(fields, field{"WiFi Signal", fmt.Sprintf("%d dBm", wifiSignal)})
				}
				fields = append(fields, pickFields(ports, []fieldMap{
					{"httpPort", "HTTP Port"},
					{"httpsPort", "HTTPS Port"},
					{"rtspPort", "RTSP Port"},
					{"rtmpPort", "RTMP Port"},
					{"onvifPort", "ONVIF Port"},
					{"mediaPort", "Media Port"},
				})...)
				f.Block("Network", fields)
				return nil
			})
		},
	}
}

func newTimeCommand(a *app) *cobra.Command {
	timeCmd := &cobra.Command{
		Use:   "time",
		Short: "System time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTimeStatus(cmd)
		},
	}
	timeCmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show system time",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runTimeStatus(cmd)
			},
		},
		newTimeSetCommand(a),
	)
	return timeCmd
}

func (a *app) runTimeStatus(cmd *cobra.Command) error {
	return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
		raw, err := cam.TimeConfig(ctx)
		if err != nil {
			return err
		}
		f := a.formatter()
		if f.jsonMode {
			return f.JSON(raw)
		}

		timeInfo := raw
		if t, ok := raw["Time"].(map[string]any); ok {
			timeInfo = camera.Object(t)
		}
		var fields []field
		if _, ok := timeInfo["year"]; ok {
			fields = append(fields, field{"Time", fmt.Sprintf("%d-%02d-%02d %02d:%02d:%02d",
				intValue(timeInfo["year"]), intValue(timeInfo["mon"]), intValue(timeInfo["day"]),
				intValue(timeInfo["hour"]), intValue(timeInfo["min"]), intValue(timeInfo["sec"]))})
		}
		if v, ok := timeInfo["timeZone"]; ok {
			hours := intValue(v) / 3600
			sign := ""
			if hours >= 0 {
				sign = "+"
			}
			fields = append(fields, field{"Timezone", fmt.Sprintf("UTC%s%d", sign, hours)})
		}
		if v, ok := timeInfo["hourFmt"]; ok {
			format := "24h"
			if intValue(v) == 1 {
				format = "12h"
			}
			fields = append(fields, field{"Hour Format", format})
		}
		if v, ok := timeInfo["timeFmt"]; ok {
			fields = append(fields, field{"Date Format", formatValue(v)})
		}
		if dst, ok := raw["Dst"].(map[string]any); ok {
			if v, ok := dst["enable"]; ok {
				fields = append(fields, field{"DST", enabledDisabled(v)})
			}
		}
		f.Block("System Time", fields)
		return nil
	})
}

func newCapabilitiesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Show camera capabilities (JSON)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				raw, err := cam.Ability(ctx)
				if err != nil {
					return err
				}
				// The capability tree is too deep for key-value display.
				return a.formatter().JSON(raw)
			})
		},
	}
}
