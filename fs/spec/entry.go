// Copyright (c) 2018 DDN. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spec

import (
	"bytes"
	"fmt"
	"strings"
)

// Defaults applied to a MountEntry when the corresponding field is not
// supplied.
const (
	DefaultFilesystem = "auto"

	DefaultAutomount = true
	DefaultUsermount = false
	DefaultExec      = true
	DefaultWritable  = true
	DefaultSync      = false
	DefaultAtime     = true
	DefaultZfsutil   = false

	DefaultDump = "0"
	DefaultFsck = "0"
)

// MountEntry contains the parameters of a single fstab line as entered
// by a user. The form tag names the field the value is read from.
type MountEntry struct {
	Device     string `form:"device" validate:"required"`
	Mountpoint string `form:"mountpoint" validate:"required"`
	Filesystem string `form:"filesystem"`

	Automount bool `form:"automount"`
	Usermount bool `form:"usermount"`
	Exec      bool `form:"exec"`
	Writable  bool `form:"writable"`
	Sync      bool `form:"sync"`
	Atime     bool `form:"atime"`
	Zfsutil   bool `form:"zfsutil"`

	Iocharset string `form:"iocharset"`
	User      string `form:"user"`
	Pass      string `form:"pass"`
	UID       string `form:"uid"`
	GID       string `form:"gid"`
	Umask     string `form:"umask"`

	Dump string `form:"dump"`
	Fsck string `form:"fsck"`
}

// NewMountEntry returns an entry with every field at its default.
func NewMountEntry() MountEntry {
	return MountEntry{
		Filesystem: DefaultFilesystem,
		Automount:  DefaultAutomount,
		Usermount:  DefaultUsermount,
		Exec:       DefaultExec,
		Writable:   DefaultWritable,
		Sync:       DefaultSync,
		Atime:      DefaultAtime,
		Zfsutil:    DefaultZfsutil,
		Dump:       DefaultDump,
		Fsck:       DefaultFsck,
	}
}

// Trimmed returns a copy of the entry with surrounding whitespace removed
// from the device, mountpoint and filesystem.
func (e MountEntry) Trimmed() MountEntry {
	e.Device = strings.TrimSpace(e.Device)
	e.Mountpoint = strings.TrimSpace(e.Mountpoint)
	e.Filesystem = strings.TrimSpace(e.Filesystem)
	return e
}

// DumpOrDefault returns the dump field, or DefaultDump if it is empty.
func (e MountEntry) DumpOrDefault() string {
	if e.Dump == "" {
		return DefaultDump
	}
	return e.Dump
}

// FsckOrDefault returns the fsck pass field, or DefaultFsck if it is empty.
func (e MountEntry) FsckOrDefault() string {
	if e.Fsck == "" {
		return DefaultFsck
	}
	return e.Fsck
}

func (e MountEntry) String() string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Device: %q\n", e.Device))
	buf.WriteString(fmt.Sprintf("Mountpoint: %q\n", e.Mountpoint))
	buf.WriteString(fmt.Sprintf("Filesystem: %q\n", e.Filesystem))
	buf.WriteString(fmt.Sprintf("Flags: auto=%t user=%t exec=%t rw=%t sync=%t atime=%t zfsutil=%t\n",
		e.Automount, e.Usermount, e.Exec, e.Writable, e.Sync, e.Atime, e.Zfsutil))
	if e.User != "" || e.Pass != "" {
		buf.WriteString(fmt.Sprintf("Credentials: user=%q pass set? %t\n", e.User, e.Pass != ""))
	}
	buf.WriteString(fmt.Sprintf("Dump/Fsck: %s %s\n", e.DumpOrDefault(), e.FsckOrDefault()))
	return buf.String()
}
