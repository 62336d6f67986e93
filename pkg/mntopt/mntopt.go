// Copyright (c) 2018 DDN. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mntopt assembles the options field of an fstab entry.
//
// Keyed options come first, in a fixed order, and only when they carry
// a value. They are followed by one token from each flag pair:
//
//	iocharset=, user=, pass=, uid=, gid=, umask=, zfsutil,
//	auto|noauto, user|nouser, exec|noexec, rw|ro, sync|async, atime|noatime
package mntopt

import (
	"strings"

	"github.com/wastore/go-fstabgen/fs/spec"
)

// Flag is a pair of mutually exclusive mount options.
type Flag struct {
	On  string
	Off string
}

// Token returns the option selected by v.
func (f Flag) Token(v bool) string {
	if v {
		return f.On
	}
	return f.Off
}

// The flag pairs, in the order they appear in the options field.
var (
	Auto  = Flag{"auto", "noauto"}
	User  = Flag{"user", "nouser"}
	Exec  = Flag{"exec", "noexec"}
	Write = Flag{"rw", "ro"}
	Sync  = Flag{"sync", "async"}
	Atime = Flag{"atime", "noatime"}
)

// Zfsutil is emitted when the zfsutil box is checked.
const Zfsutil = "zfsutil"

// Options is an ordered list of mount option tokens.
type Options []string

func (o Options) String() string {
	return strings.Join(o, ",")
}

// Has returns true if the token is present.
func (o Options) Has(token string) bool {
	for _, t := range o {
		if t == token {
			return true
		}
	}
	return false
}

func (o Options) keyed(key, value string) Options {
	if value == "" {
		return o
	}
	return append(o, key+"="+value)
}

// FromEntry returns the options for e. Keyed values are used verbatim.
func FromEntry(e spec.MountEntry) Options {
	o := make(Options, 0, 13)
	o = o.keyed("iocharset", e.Iocharset)
	o = o.keyed("user", e.User)
	o = o.keyed("pass", e.Pass)
	o = o.keyed("uid", e.UID)
	o = o.keyed("gid", e.GID)
	o = o.keyed("umask", e.Umask)
	if e.Zfsutil {
		o = append(o, Zfsutil)
	}
	return append(o,
		Auto.Token(e.Automount),
		User.Token(e.Usermount),
		Exec.Token(e.Exec),
		Write.Token(e.Writable),
		Sync.Token(e.Sync),
		Atime.Token(e.Atime),
	)
}
