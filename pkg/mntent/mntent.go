// Copyright (c) 2018 DDN. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mntent

import (
	"fmt"

	"github.com/wastore/go-fstabgen/fs/spec"
	"github.com/wastore/go-fstabgen/pkg/mntopt"
)

// Entry is an entry in a filesystem table. Freq and Passno are kept as
// entered and are not checked for being numeric.
type Entry struct {
	Fsname string
	Dir    string
	Type   string
	Opts   string
	Freq   string
	Passno string
}

// FromMountEntry returns the table entry for a trimmed MountEntry.
func FromMountEntry(e spec.MountEntry) *Entry {
	return &Entry{
		Fsname: e.Device,
		Dir:    e.Mountpoint,
		Type:   e.Filesystem,
		Opts:   mntopt.FromEntry(e).String(),
		Freq:   e.DumpOrDefault(),
		Passno: e.FsckOrDefault(),
	}
}

// String formats the entry as one fstab line: five tab separated fields,
// the last of which holds the dump and pass numbers separated by a space.
func (e *Entry) String() string {
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s %s", e.Fsname, e.Dir, e.Type, e.Opts, e.Freq, e.Passno)
}
