package spec

// Filesystems is the list of filesystem types offered to the user. The
// selected value is used verbatim, a type missing from this list is not
// an error.
var Filesystems = []string{
	"auto",
	"ext2",
	"ext3",
	"ext4",
	"xfs",
	"btrfs",
	"vfat",
	"exfat",
	"ntfs",
	"cifs",
	"nfs",
	"nfs4",
	"sshfs",
	"zfs",
	"swap",
	"tmpfs",
}

// IsKnownFilesystem returns true if name is one of the offered types.
func IsKnownFilesystem(name string) bool {
	for _, fs := range Filesystems {
		if fs == name {
			return true
		}
	}
	return false
}
