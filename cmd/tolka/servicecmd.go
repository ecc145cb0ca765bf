package main

import (
	"fmt"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"
)

// program adapts runStart to the system service lifecycle.
type program struct {
	cfgPath string
	errCh   chan error
}

func (p *program) Start(_ service.Service) error {
	p.errCh = make(chan error, 1)
	go func() {
		p.errCh <- runStart(p.cfgPath)
	}()
	return nil
}

func (p *program) Stop(_ service.Service) error {
	// runStart shuts down on SIGTERM, which the service manager sends on
	// stop. Nothing to do here beyond returning control.
	return nil
}

func newService(cfgPath string) (service.Service, *program, error) {
	prg := &program{cfgPath: cfgPath}

	args := []string{"service", "run"}
	if cfgPath != "" {
		args = append(args, "--config", cfgPath)
	}

	svc, err := service.New(prg, &service.Config{
		Name:        "tolka",
		DisplayName: "Tolka Translation Bot",
		Description: "Telegram bot that translates messages via OpenAI",
		Arguments:   args,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating service: %w", err)
	}
	return svc, prg, nil
}

func serviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage tolka as a system service",
	}
	cmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file")

	action := func(name string, run func(service.Service) error) *cobra.Command {
		return &cobra.Command{
			Use:   name,
			Short: fmt.Sprintf("%s the tolka system service", name),
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfgPath, _ := cmd.Flags().GetString("config")
				svc, _, err := newService(cfgPath)
				if err != nil {
					return err
				}
				if err := run(svc); err != nil {
					return err
				}
				fmt.Printf("service %s: done\n", name)
				return nil
			},
		}
	}

	cmd.AddCommand(
		action("install", func(s service.Service) error { return s.Install() }),
		action("uninstall", func(s service.Service) error { return s.Uninstall() }),
		action("start", func(s service.Service) error { return s.Start() }),
		action("stop", func(s service.Service) error { return s.Stop() }),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run in the foreground under the service manager",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			svc, prg, err := newService(cfgPath)
			if err != nil {
				return err
			}
			if err := svc.Run(); err != nil {
				return err
			}
			select {
			case err := <-prg.errCh:
				return err
			default:
				return nil
			}
		},
	})

	return cmd
}
