// Package form moves MountEntry values in and out of submitted HTML form
// fields. Fields are matched by the form tag of spec.MountEntry.
package form

import (
	"net/url"
	"reflect"
	"strings"

	"github.com/wastore/go-fstabgen/fs/spec"
)

// Values written for a checkbox. A page renders a hidden input carrying
// Unchecked ahead of every checkbox so an unticked box is still submitted.
const (
	Checked   = "on"
	Unchecked = "off"
)

func isChecked(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// Decode reads a MountEntry from submitted form values. A field that is
// missing from v keeps its default, so a partial form never fails. When a
// name is submitted more than once the last value wins.
func Decode(v url.Values) spec.MountEntry {
	e := spec.NewMountEntry()
	el := reflect.ValueOf(&e).Elem()
	tp := el.Type()

	for i := 0; i < tp.NumField(); i++ {
		name := tp.Field(i).Tag.Get("form")
		if name == "" {
			continue
		}
		vals, ok := v[name]
		if !ok || len(vals) == 0 {
			continue
		}
		last := vals[len(vals)-1]

		field := el.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(last)
		case reflect.Bool:
			field.SetBool(isChecked(last))
		}
	}
	return e
}

// Encode writes every field of e as form values.
func Encode(e spec.MountEntry) url.Values {
	v := url.Values{}
	el := reflect.ValueOf(e)
	tp := el.Type()

	for i := 0; i < tp.NumField(); i++ {
		name := tp.Field(i).Tag.Get("form")
		if name == "" {
			continue
		}
		field := el.Field(i)
		switch field.Kind() {
		case reflect.String:
			v.Set(name, field.String())
		case reflect.Bool:
			if field.Bool() {
				v.Set(name, Checked)
			} else {
				v.Set(name, Unchecked)
			}
		}
	}
	return v
}
