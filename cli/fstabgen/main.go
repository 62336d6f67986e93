// fstabgen prints a line for /etc/fstab built from mount parameters, or
// serves the same generator as a web form.
//
//	fstabgen generate --device /dev/sda1 --mountpoint /mnt/data --fs ext4
//	fstabgen serve --listen :8080
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/intel-hpdd/logging/debug"
	metrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"

	fstabgen "github.com/wastore/go-fstabgen"
	"github.com/wastore/go-fstabgen/config"
	"github.com/wastore/go-fstabgen/fs/spec"
	"github.com/wastore/go-fstabgen/web"
)

var danger = color.New(color.FgHiRed)

type app struct {
	cfgFile string
	debug   bool
	cfg     *config.Config
}

func (a *app) loadConfig(cmd *cobra.Command, args []string) error {
	if a.debug {
		debug.Enable()
	}
	if a.cfgFile == "" {
		a.cfg = config.Default()
	} else {
		cfg, err := config.Load(a.cfgFile)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.cfg.Debug {
		debug.Enable()
	}
	debug.Printf("config:\n%s", a.cfg)
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "fstabgen",
		Short:             "Generate /etc/fstab lines",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug output")

	root.AddCommand(newGenerateCmd(a), newServeCmd(a), newFilesystemsCmd(a))
	return root
}

func newGenerateCmd(a *app) *cobra.Command {
	e := spec.NewMountEntry()
	var permissive bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print the fstab line for the given mount parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy := a.cfg.BuilderPolicy()
			if cmd.Flags().Changed("permissive") {
				policy = fstabgen.PolicyStrict
				if permissive {
					policy = fstabgen.PolicyPermissive
				}
			}
			if fs := e.Filesystem; !spec.IsKnownFilesystem(fs) {
				debug.Printf("filesystem %q is not one of the offered types", fs)
			}
			debug.Printf("entry:\n%s", e)

			stderr := cmd.ErrOrStderr()
			b := fstabgen.New(
				fstabgen.WithPolicy(policy),
				fstabgen.WithOutput(fstabgen.WriterOutput{W: cmd.OutOrStdout()}),
				fstabgen.WithNotifier(fstabgen.NotifierFunc(func(err error) {
					notify(stderr, err)
				})),
			)
			_, err := b.Build(e)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&e.Device, "device", "d", "", "Device, label, UUID or remote share")
	f.StringVarP(&e.Mountpoint, "mountpoint", "m", "", "Mount point")
	f.StringVarP(&e.Filesystem, "fs", "t", spec.DefaultFilesystem, "Filesystem type")
	f.BoolVar(&e.Automount, "automount", spec.DefaultAutomount, "Mount at boot (auto/noauto)")
	f.BoolVar(&e.Usermount, "usermount", spec.DefaultUsermount, "Allow users to mount (user/nouser)")
	f.BoolVar(&e.Exec, "exec", spec.DefaultExec, "Allow execution of binaries (exec/noexec)")
	f.BoolVar(&e.Writable, "writable", spec.DefaultWritable, "Mount read-write (rw/ro)")
	f.BoolVar(&e.Sync, "sync", spec.DefaultSync, "Synchronous I/O (sync/async)")
	f.BoolVar(&e.Atime, "atime", spec.DefaultAtime, "Update access times (atime/noatime)")
	f.BoolVar(&e.Zfsutil, "zfsutil", spec.DefaultZfsutil, "Add the zfsutil option")
	f.StringVar(&e.Iocharset, "iocharset", "", "Character set for file names")
	f.StringVar(&e.User, "user", "", "User name for network shares")
	f.StringVar(&e.Pass, "pass", "", "Password for network shares")
	f.StringVar(&e.UID, "uid", "", "Owner of all files")
	f.StringVar(&e.GID, "gid", "", "Group of all files")
	f.StringVar(&e.Umask, "umask", "", "Permission mask")
	f.StringVar(&e.Dump, "dump", spec.DefaultDump, "dump field")
	f.StringVar(&e.Fsck, "fsck", spec.DefaultFsck, "fsck pass number")
	f.BoolVar(&permissive, "permissive", false, "Emit a line even if the device or mount point is empty")
	return cmd
}

func notify(w io.Writer, err error) {
	if ve, ok := err.(*spec.ValidationError); ok {
		danger.Fprintf(w, "%s (%s)\n", ve.Message(), ve)
		return
	}
	danger.Fprintln(w, err)
}

func newServeCmd(a *app) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator as a web form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				a.cfg.Listen = listen
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()
			return web.NewServer(a.cfg, metrics.NewRegistry()).Run(ctx)
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address (default from config)")
	return cmd
}

func newFilesystemsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "filesystems",
		Short: "List the offered filesystem types",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, fs := range a.cfg.Filesystems {
				fmt.Fprintln(cmd.OutOrStdout(), fs)
			}
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !spec.IsValidationError(err) {
			danger.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
