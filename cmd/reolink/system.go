package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/reolink-cli/reolink/internal/camera"
)

func newRebootCommand(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "reboot",
		Short: "Reboot the camera",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return usagef("refusing to reboot without --force")
			}
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				if err := cam.Reboot(ctx); err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(map[string]any{"reboot": "initiated"})
				}
				f.Line("Camera reboot initiated.")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Confirm the reboot")
	return cmd
}

func newFirmwareCommand(a *app) *cobra.Command {
	fw := &cobra.Command{
		Use:   "firmware",
		Short: "Firmware information and updates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFirmwareInfo(cmd)
		},
	}
	var force bool
	update := &cobra.Command{
		Use:   "update",
		Short: "Start an online firmware update",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return usagef("refusing to update firmware without --force")
			}
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				if err := cam.UpgradeOnline(ctx); err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(map[string]any{"firmware_update": "initiated"})
				}
				f.Line("Firmware update initiated. Camera will reboot when complete.")
				return nil
			})
		},
	}
	update.Flags().BoolVar(&force, "force", false, "Confirm the update")
	fw.AddCommand(
		&cobra.Command{
			Use:   "check",
			Short: "Check for firmware updates",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
					raw, err := cam.CheckFirmware(ctx)
					if err != nil {
						return err
					}
					f := a.formatter()
					if f.jsonMode {
						return f.JSON(raw)
					}
					info, _ := raw["newFirmware"].(map[string]any)
					if info == nil {
						info = raw
					}
					available := "No"
					if intValue(info["needUpgrade"]) == 1 || intValue(raw["newFirmware"]) == 1 {
						available = "Yes"
					}
					fields := []field{{"Update Available", available}}
					if v, ok := info["firmVer"]; ok {
						fields = append(fields, field{"Available Version", formatValue(v)})
					}
					f.Block("Firmware Check", fields)
					return nil
				})
			},
		},
		update,
	)
	return fw
}

func (a *app) runFirmwareInfo(cmd *cobra.Command) error {
	return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
		info, err := cam.DeviceInfo(ctx)
		if err != nil {
			return err
		}
		f := a.formatter()
		if f.jsonMode {
			return f.JSON(info)
		}
		f.Block("Firmware Info", pickFields(info, []fieldMap{
			{"firmVer", "Firmware"},
			{"model", "Model"},
			{"hardVer", "Hardware"},
			{"buildDay", "Build Day"},
		}))
		return nil
	})
}

// timeLayouts are the formats accepted by "time set".
var timeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func newTimeSetCommand(a *app) *cobra.Command {
	var timezone int
	cmd := &cobra.Command{
		Use:   "set <datetime>",
		Short: "Set the system time (e.g. \"2026-08-30 12:00:00\")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				when time.Time
				err  error
			)
			for _, layout := range timeLayouts {
				when, err = time.ParseInLocation(layout, args[0], time.Local)
				if err == nil {
					break
				}
			}
			if err != nil {
				return usagef("cannot parse datetime %q", args[0])
			}
			timeCfg := camera.Object{
				"year": when.Year(),
				"mon":  int(when.Month()),
				"day":  when.Day(),
				"hour": when.Hour(),
				"min":  when.Minute(),
				"sec":  when.Second(),
			}
			if cmd.Flags().Changed("timezone") {
				timeCfg["timeZone"] = timezone * 3600
			}
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				if err := cam.SetTime(ctx, camera.Object{"Time": timeCfg}); err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(timeCfg)
				}
				f.Line("System time set to %s.", when.Format("2006-01-02 15:04:05"))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&timezone, "timezone", 0, "UTC offset in hours")
	return cmd
}

func newNtpCommand(a *app) *cobra.Command {
	ntp := &cobra.Command{
		Use:   "ntp",
		Short: "NTP time synchronization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runNtpStatus(cmd)
		},
	}
	ntp.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show NTP configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runNtpStatus(cmd)
			},
		},
		newNtpSetCommand(a),
	)
	return ntp
}

func (a *app) runNtpStatus(cmd *cobra.Command) error {
	return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
		raw, err := cam.Ntp(ctx)
		if err != nil {
			return err
		}
		f := a.formatter()
		if f.jsonMode {
			return f.JSON(raw)
		}
		var fields []field
		if v, ok := raw["enable"]; ok {
			fields = append(fields, field{"Enabled", enabledDisabled(v)})
		}
		fields = append(fields, pickFields(raw, []fieldMap{
			{"server", "Server"},
			{"port", "Port"},
		})...)
		if v, ok := raw["interval"]; ok {
			fields = append(fields, field{"Interval", formatValue(v) + " min"})
		}
		f.Block("NTP", fields)
		return nil
	})
}

func newNtpSetCommand(a *app) *cobra.Command {
	var (
		server          string
		port            int
		enable, disable bool
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set NTP configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if enable && disable {
				return usagef("--enable and --disable are mutually exclusive")
			}
			changes := camera.Object{}
			if server != "" {
				changes["server"] = server
			}
			if cmd.Flags().Changed("port") {
				changes["port"] = port
			}
			if enable {
				changes["enable"] = 1
			}
			if disable {
				changes["enable"] = 0
			}
			if len(changes) == 0 {
				return usagef("nothing to change")
			}
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				if err := cam.SetNtp(ctx, changes); err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(changes)
				}
				f.Line("NTP configuration updated.")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "NTP server hostname")
	cmd.Flags().IntVar(&port, "port", 0, "NTP server port")
	cmd.Flags().BoolVar(&enable, "enable", false, "Enable NTP sync")
	cmd.Flags().BoolVar(&disable, "disable", false, "Disable NTP sync")
	return cmd
}

func newUsersCommand(a *app) *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Camera user accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUsersList(cmd)
		},
	}
	var level string
	add := &cobra.Command{
		Use:   "add <username> <password>",
		Short: "Add a user account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if level != "admin" && level != "guest" {
				return usagef("invalid level %q (use admin or guest)", level)
			}
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				if err := cam.AddUser(ctx, args[0], args[1], level); err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(map[string]any{"user": args[0], "level": level})
				}
				f.Line("User %s added.", args[0])
				return nil
			})
		},
	}
	add.Flags().StringVar(&level, "level", "guest", "Privilege level (admin or guest)")
	var force bool
	del := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return usagef("refusing to delete user without --force")
			}
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				if err := cam.DeleteUser(ctx, args[0]); err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(map[string]any{"deleted": args[0]})
				}
				f.Line("User %s deleted.", args[0])
				return nil
			})
		},
	}
	del.Flags().BoolVar(&force, "force", false, "Confirm the deletion")
	users.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List user accounts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runUsersList(cmd)
			},
		},
		add,
		del,
	)
	return users
}

func (a *app) runUsersList(cmd *cobra.Command) error {
	return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
		users, err := cam.Users(ctx)
		if err != nil {
			return err
		}
		online, err := cam.OnlineSessions(ctx)
		if err != nil && !camera.IsUnsupported(err) {
			return err
		}
		onlineNames := map[string]bool{}
		for _, session := range online {
			if name, ok := session["userName"].(string); ok {
				onlineNames[name] = true
			}
		}
		f := a.formatter()
		if f.jsonMode {
			return f.JSON(camera.Object{"users": users, "online": online})
		}
		f.Line("Users:")
		for _, user := range users {
			name, _ := user["userName"].(string)
			userLevel, _ := user["level"].(string)
			suffix := ""
			if onlineNames[name] {
				suffix = " (online)"
			}
			f.Line("  %-20s  %-10s%s", name, userLevel, suffix)
		}
		return nil
	})
}
