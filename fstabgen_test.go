// Copyright (c) 2018 DDN. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fstabgen_test

import (
	"bytes"
	"strings"
	"testing"

	metrics "github.com/rcrowley/go-metrics"

	fstabgen "github.com/wastore/go-fstabgen"
	"github.com/wastore/go-fstabgen/fs/spec"

	. "github.com/smartystreets/goconvey/convey"
)

func newEntry(device, mountpoint, fsType string) spec.MountEntry {
	e := spec.NewMountEntry()
	e.Device = device
	e.Mountpoint = mountpoint
	e.Filesystem = fsType
	return e
}

type recorder struct {
	errs []error
}

func (r *recorder) Notify(err error) {
	r.errs = append(r.errs, err)
}

func TestBuild(t *testing.T) {
	Convey("Build() should produce the fstab line for an entry", t, func() {
		var tests = []struct {
			name  string
			entry func() spec.MountEntry
			out   string
		}{
			{
				name:  "defaults",
				entry: func() spec.MountEntry { return newEntry("/dev/sda1", "/mnt/data", "ext4") },
				out:   "/dev/sda1\t/mnt/data\text4\tauto,nouser,exec,rw,async,atime\t0 0",
			},
			{
				name: "flags flipped",
				entry: func() spec.MountEntry {
					e := newEntry("/dev/sdb1", "/home", "ext3")
					e.Automount, e.Exec, e.Writable, e.Atime = false, false, false, false
					e.Usermount, e.Sync = false, false
					return e
				},
				out: "/dev/sdb1\t/home\text3\tnoauto,nouser,noexec,ro,async,noatime\t0 0",
			},
			{
				name: "all checked",
				entry: func() spec.MountEntry {
					e := newEntry("/dev/sdc1", "/var", "ext2")
					e.Usermount, e.Sync = true, true
					return e
				},
				out: "/dev/sdc1\t/var\text2\tauto,user,exec,rw,sync,atime\t0 0",
			},
			{
				name: "cifs credentials",
				entry: func() spec.MountEntry {
					e := newEntry("//server/share", "/mnt/network", "cifs")
					e.User, e.Pass = "username", "password"
					return e
				},
				out: "//server/share\t/mnt/network\tcifs\tuser=username,pass=password,auto,nouser,exec,rw,async,atime\t0 0",
			},
			{
				name: "cifs everything",
				entry: func() spec.MountEntry {
					e := newEntry("//server/share", "/mnt/network", "cifs")
					e.Iocharset, e.User, e.Pass = "utf8", "username", "password"
					return e
				},
				out: "//server/share\t/mnt/network\tcifs\tiocharset=utf8,user=username,pass=password,auto,nouser,exec,rw,async,atime\t0 0",
			},
			{
				name: "vfat umask",
				entry: func() spec.MountEntry {
					e := newEntry("/dev/sda1", "/mnt/windows", "vfat")
					e.Umask = "022"
					return e
				},
				out: "/dev/sda1\t/mnt/windows\tvfat\tumask=022,auto,nouser,exec,rw,async,atime\t0 0",
			},
			{
				name: "zfsutil",
				entry: func() spec.MountEntry {
					e := newEntry("tank/data", "/mnt/zfs", "zfs")
					e.Zfsutil = true
					return e
				},
				out: "tank/data\t/mnt/zfs\tzfs\tzfsutil,auto,nouser,exec,rw,async,atime\t0 0",
			},
			{
				name: "dump and fsck",
				entry: func() spec.MountEntry {
					e := newEntry("/dev/sde1", "/backup", "ext4")
					e.Dump, e.Fsck = "1", "2"
					return e
				},
				out: "/dev/sde1\t/backup\text4\tauto,nouser,exec,rw,async,atime\t1 2",
			},
			{
				name:  "whitespace",
				entry: func() spec.MountEntry { return newEntry("  /dev/sda1  ", "  /mnt/data  ", "  ext4  ") },
				out:   "/dev/sda1\t/mnt/data\text4\tauto,nouser,exec,rw,async,atime\t0 0",
			},
		}

		for _, tc := range tests {
			Convey(tc.name, func() {
				field := &fstabgen.Field{}
				b := fstabgen.New(fstabgen.WithOutput(field), fstabgen.WithNotifier(fstabgen.Silent))

				line, err := b.Build(tc.entry())
				So(err, ShouldBeNil)
				So(line, ShouldEqual, tc.out)
				So(field.Value(), ShouldEqual, tc.out)

				Convey("and the same line again for the same entry", func() {
					again, err := b.Build(tc.entry())
					So(err, ShouldBeNil)
					So(again, ShouldEqual, line)
				})
			})
		}
	})
}

func TestBuildEmptyRequiredFields(t *testing.T) {
	Convey("Given an entry without device and mount point", t, func() {
		e := newEntry("", "   ", "auto")
		field := &fstabgen.Field{}
		field.SetOutput("previous")
		notes := &recorder{}

		Convey("the strict policy rejects it without touching the output", func() {
			b := fstabgen.New(fstabgen.WithOutput(field), fstabgen.WithNotifier(notes))
			line, err := b.Build(e)
			So(line, ShouldEqual, "")
			So(spec.IsValidationError(err), ShouldBeTrue)
			So(err.(*spec.ValidationError).Fields, ShouldResemble, []string{"device", "mountpoint"})
			So(field.Value(), ShouldEqual, "previous")
			So(len(notes.errs), ShouldEqual, 1)
			So(b.Metrics().Rejected.Count(), ShouldEqual, int64(1))
			So(b.Metrics().Generated.Count(), ShouldEqual, int64(0))
		})

		Convey("the permissive policy notifies and still emits the line", func() {
			b := fstabgen.New(
				fstabgen.WithPolicy(fstabgen.PolicyPermissive),
				fstabgen.WithOutput(field),
				fstabgen.WithNotifier(notes),
			)
			line, err := b.Build(e)
			So(err, ShouldBeNil)
			So(line, ShouldEqual, "\t\tauto\tauto,nouser,exec,rw,async,atime\t0 0")
			So(field.Value(), ShouldEqual, line)
			So(len(notes.errs), ShouldEqual, 1)
			So(b.Metrics().Rejected.Count(), ShouldEqual, int64(1))
			So(b.Metrics().Generated.Count(), ShouldEqual, int64(1))
		})
	})
}

func TestParsePolicy(t *testing.T) {
	Convey("ParsePolicy() should accept the policy names", t, func() {
		var tests = []struct {
			in  string
			out fstabgen.Policy
			err string
		}{
			{in: "", out: fstabgen.PolicyStrict},
			{in: "strict", out: fstabgen.PolicyStrict},
			{in: " Permissive ", out: fstabgen.PolicyPermissive},
			{in: "lenient", out: fstabgen.PolicyStrict, err: `unknown validation policy "lenient"`},
		}
		for _, tc := range tests {
			Convey("policy "+tc.in, func() {
				p, err := fstabgen.ParsePolicy(tc.in)
				if tc.err == "" {
					So(err, ShouldBeNil)
				} else {
					So(err.Error(), ShouldEqual, tc.err)
				}
				So(p, ShouldEqual, tc.out)
			})
		}
		So(fstabgen.PolicyPermissive.String(), ShouldEqual, "permissive")
	})
}

func TestWriterOutput(t *testing.T) {
	Convey("WriterOutput should write one line per build", t, func() {
		var buf bytes.Buffer
		b := fstabgen.New(fstabgen.WithOutput(fstabgen.WriterOutput{W: &buf}))
		_, err := b.Build(newEntry("/dev/sda1", "/", "xfs"))
		So(err, ShouldBeNil)
		_, err = b.Build(newEntry("/dev/sda2", "/boot", "ext4"))
		So(err, ShouldBeNil)
		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		So(len(lines), ShouldEqual, 2)
		So(lines[1], ShouldStartWith, "/dev/sda2\t/boot\text4\t")
	})
}

func TestSharedRegistry(t *testing.T) {
	Convey("Builders sharing a registry should share counters", t, func() {
		r := metrics.NewRegistry()
		a := fstabgen.New(fstabgen.WithRegistry(r))
		b := fstabgen.New(fstabgen.WithRegistry(r))
		a.Build(newEntry("/dev/sda1", "/", "ext4"))
		b.Build(newEntry("/dev/sda1", "/", "ext4"))
		So(r.Get("lines.generated").(metrics.Counter).Count(), ShouldEqual, int64(2))
	})
}
