package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reolink-cli/reolink/internal/camera"
)

var alarmStateNames = map[int]string{0: "Idle", 1: "Triggered"}

func newMotionCommand(a *app) *cobra.Command {
	motion := &cobra.Command{
		Use:   "motion",
		Short: "Motion detection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMotionStatus(cmd)
		},
	}
	motion.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show motion detection status",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runMotionStatus(cmd)
			},
		},
		newMotionSetCommand(a),
	)
	return motion
}

func (a *app) runMotionStatus(cmd *cobra.Command) error {
	return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
		alarm, err := cam.MdAlarm(ctx)
		if err != nil {
			return err
		}
		state, err := cam.MdState(ctx)
		if err != nil {
			return err
		}
		f := a.formatter()
		if f.jsonMode {
			return f.JSON(camera.Object{"alarm": alarm, "state": state})
		}

		var fields []field
		if v, ok := alarm["enable"]; ok {
			enabled := "No"
			if intValue(v) == 1 {
				enabled = "Yes"
			}
			fields = append(fields, field{"Enabled", enabled})
		}
		fields = append(fields, field{"Motion", lookupState(alarmStateNames, state["state"])})
		if sens, ok := alarm["sens"].([]any); ok && len(sens) > 0 {
			values := make([]string, 0, len(sens))
			for _, s := range sens {
				if m, ok := s.(map[string]any); ok {
					values = append(values, formatValue(m["val"]))
				} else {
					values = append(values, formatValue(s))
				}
			}
			fields = append(fields, field{"Sensitivity", strings.Join(values, ", ")})
		} else if v, ok := alarm["sens"]; ok {
			fields = append(fields, field{"Sensitivity", formatValue(v)})
		}
		f.Block("Motion Detection", fields)
		return nil
	})
}

func newMotionSetCommand(a *app) *cobra.Command {
	var (
		enable      bool
		disable     bool
		sensitivity int
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set motion detection configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if enable && disable {
				return usagef("--enable and --disable are mutually exclusive")
			}
			var settings camera.MdAlarmSettings
			if enable {
				on := true
				settings.Enable = &on
			}
			if disable {
				off := false
				settings.Enable = &off
			}
			if cmd.Flags().Changed("sensitivity") {
				if sensitivity < 0 || sensitivity > 100 {
					return usagef("sensitivity must be between 0 and 100")
				}
				settings.Sensitivity = &sensitivity
			}
			if settings.Enable == nil && settings.Sensitivity == nil {
				return usagef("nothing to change (use --enable, --disable, or --sensitivity)")
			}
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				if err := cam.SetMdAlarm(ctx, settings); err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					out := map[string]any{}
					if settings.Enable != nil {
						out["enable"] = *settings.Enable
					}
					if settings.Sensitivity != nil {
						out["sensitivity"] = *settings.Sensitivity
					}
					return f.JSON(out)
				}
				f.Line("Motion detection updated.")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&enable, "enable", false, "Enable motion detection")
	cmd.Flags().BoolVar(&disable, "disable", false, "Disable motion detection")
	cmd.Flags().IntVar(&sensitivity, "sensitivity", 0, "Sensitivity (0-100)")
	return cmd
}

// AI detection types shown in status output, in display order.
var aiStatusTypes = []struct {
	key   string
	label string
}{
	{"people", "Person"},
	{"vehicle", "Vehicle"},
	{"dog_cat", "Animal"},
	{"face", "Face"},
}

func newAiCommand(a *app) *cobra.Command {
	ai := &cobra.Command{
		Use:   "ai",
		Short: "AI detection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAiStatus(cmd)
		},
	}
	ai.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show AI detection status",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runAiStatus(cmd)
			},
		},
		newAiSetCommand(a),
	)
	return ai
}

func newAiSetCommand(a *app) *cobra.Command {
	flagKeys := []struct {
		flag string
		key  string
	}{
		{"person", "people"},
		{"vehicle", "vehicle"},
		{"animal", "dog_cat"},
		{"face", "face"},
	}
	values := make(map[string]*string, len(flagKeys))
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Enable or disable AI detection types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			changes := camera.Object{}
			for _, fk := range flagKeys {
				switch *values[fk.flag] {
				case "":
				case "on":
					changes[fk.key] = 1
				case "off":
					changes[fk.key] = 0
				default:
					return usagef("invalid value %q for --%s (use on or off)", *values[fk.flag], fk.flag)
				}
			}
			if len(changes) == 0 {
				return usagef("nothing to change (use --person, --vehicle, --animal, or --face)")
			}
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				if err := cam.SetAiCfg(ctx, changes); err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(changes)
				}
				f.Line("AI detection updated.")
				return nil
			})
		},
	}
	for _, fk := range flagKeys {
		values[fk.flag] = cmd.Flags().String(fk.flag, "", fk.flag+" detection on/off")
	}
	return cmd
}

func (a *app) runAiStatus(cmd *cobra.Command) error {
	return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
		state, err := cam.AiState(ctx)
		if err != nil {
			return err
		}
		// AI type config is optional; some cameras only report state.
		cfg, err := cam.AiCfg(ctx)
		if err != nil {
			if !camera.IsUnsupported(err) {
				return err
			}
			cfg = nil
		}

		f := a.formatter()
		if f.jsonMode {
			data := camera.Object{"state": state}
			if cfg != nil {
				data["config"] = cfg
			}
			return f.JSON(data)
		}

		var fields []field
		for _, t := range aiStatusTypes {
			info, ok := state[t.key].(map[string]any)
			if !ok || intValue(info["support"]) == 0 {
				continue
			}
			status := lookupState(alarmStateNames, info["alarm_state"])
			if cfg != nil {
				if enabled, ok := cfg[t.key]; ok {
					status = fmt.Sprintf("%s (%s)", onOff(enabled), status)
				}
			}
			fields = append(fields, field{t.label, status})
		}
		f.Block("AI Detection", fields)
		return nil
	})
}
