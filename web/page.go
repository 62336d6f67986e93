package web

import (
	"html/template"

	"github.com/wastore/go-fstabgen/fs/spec"
	"github.com/wastore/go-fstabgen/form"
)

type page struct {
	Entry       spec.MountEntry
	Filesystems []string
	Output      string
	Alert       string
}

func newPage(e spec.MountEntry, filesystems []string) *page {
	return &page{
		Entry:       e,
		Filesystems: filesystems,
	}
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"box": func(name, label string, v bool) checkbox {
		return checkbox{Name: name, Label: label, Value: v, On: form.Checked, Off: form.Unchecked}
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>fstab line generator</title>
</head>
<body>
<form name="fstabdata" method="post" action="/generate">
<p>
<label>Device <input type="text" name="device" value="{{.Entry.Device}}"></label>
<label>Mount point <input type="text" name="mountpoint" value="{{.Entry.Mountpoint}}"></label>
<label>Filesystem <select name="filesystem">
{{- range .Filesystems}}
<option value="{{.}}"{{if eq . $.Entry.Filesystem}} selected{{end}}>{{.}}</option>
{{- end}}
</select></label>
</p>
<p>
{{template "checkbox" (box "automount" "Mount at boot" .Entry.Automount)}}
{{template "checkbox" (box "usermount" "Users may mount" .Entry.Usermount)}}
{{template "checkbox" (box "exec" "Allow execution" .Entry.Exec)}}
{{template "checkbox" (box "writable" "Writable" .Entry.Writable)}}
{{template "checkbox" (box "sync" "Synchronous I/O" .Entry.Sync)}}
{{template "checkbox" (box "atime" "Update access times" .Entry.Atime)}}
{{template "checkbox" (box "zfsutil" "zfsutil" .Entry.Zfsutil)}}
</p>
<p>
<label>iocharset <input type="text" name="iocharset" value="{{.Entry.Iocharset}}"></label>
<label>User <input type="text" name="user" value="{{.Entry.User}}"></label>
<label>Password <input type="password" name="pass" value="{{.Entry.Pass}}"></label>
<label>uid <input type="text" name="uid" value="{{.Entry.UID}}"></label>
<label>gid <input type="text" name="gid" value="{{.Entry.GID}}"></label>
<label>umask <input type="text" name="umask" value="{{.Entry.Umask}}"></label>
<label>dump <input type="text" name="dump" value="{{.Entry.DumpOrDefault}}"></label>
<label>fsck <input type="text" name="fsck" value="{{.Entry.FsckOrDefault}}"></label>
</p>
<p><input type="submit" value="Generate"></p>
<p><textarea name="output" rows="2" cols="100" readonly>{{.Output}}</textarea></p>
</form>
{{- if .Alert}}
<script>window.alert({{.Alert}});</script>
{{- end}}
</body>
</html>
{{define "checkbox"}}<input type="hidden" name="{{.Name}}" value="{{.Off}}"><label><input type="checkbox" name="{{.Name}}" value="{{.On}}"{{if .Value}} checked{{end}}> {{.Label}}</label>{{end}}
`))

type checkbox struct {
	Name  string
	Label string
	Value bool
	On    string
	Off   string
}
