package fstabgen

import (
	"io"
	"sync"

	"github.com/intel-hpdd/logging/alert"

	"github.com/wastore/go-fstabgen/fs/spec"
)

// Output is the field a generated line is written into.
type Output interface {
	SetOutput(line string)
}

// OutputFunc adapts a function to Output.
type OutputFunc func(line string)

func (f OutputFunc) SetOutput(line string) { f(line) }

// Discard is an Output that drops every line.
var Discard Output = OutputFunc(func(string) {})

// Field is an Output that holds the last line written to it.
type Field struct {
	mu    sync.Mutex
	value string
}

func (f *Field) SetOutput(line string) {
	f.mu.Lock()
	f.value = line
	f.mu.Unlock()
}

// Value returns the last line written.
func (f *Field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// WriterOutput writes each line, newline terminated, to an io.Writer.
type WriterOutput struct {
	W io.Writer
}

func (o WriterOutput) SetOutput(line string) {
	io.WriteString(o.W, line+"\n")
}

// Notifier tells the user that an entry was rejected.
type Notifier interface {
	Notify(err error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(err error)

func (f NotifierFunc) Notify(err error) { f(err) }

// AlertNotifier reports rejected entries through the alert log.
type AlertNotifier struct{}

func (AlertNotifier) Notify(err error) {
	if ve, ok := err.(*spec.ValidationError); ok {
		alert.Warn(ve.Message())
		return
	}
	alert.Warn(err)
}

// Silent is a Notifier that suppresses every notification.
var Silent Notifier = NotifierFunc(func(error) {})
