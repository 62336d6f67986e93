// Copyright (c) 2018 DDN. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fstabgen turns mount parameters entered by a user into a single
// line for /etc/fstab.
//
package fstabgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/intel-hpdd/logging/debug"
	metrics "github.com/rcrowley/go-metrics"

	"github.com/wastore/go-fstabgen/fs/spec"
	"github.com/wastore/go-fstabgen/pkg/mntent"
)

// Policy selects what Build does when required fields are empty.
type Policy int

const (
	// PolicyStrict rejects the entry and leaves the output untouched.
	PolicyStrict Policy = iota
	// PolicyPermissive notifies the user but still emits a line with the
	// empty fields.
	PolicyPermissive
)

func (p Policy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyPermissive:
		return "permissive"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy returns the policy named by s.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return PolicyStrict, nil
	case "permissive":
		return PolicyPermissive, nil
	default:
		return PolicyStrict, fmt.Errorf("unknown validation policy %q", s)
	}
}

// Builder builds fstab lines.
type Builder struct {
	policy   Policy
	output   Output
	notifier Notifier
	metrics  *Metrics
}

// Option configures a Builder.
type Option func(*Builder)

// WithPolicy sets the empty field policy. The default is PolicyStrict.
func WithPolicy(p Policy) Option {
	return func(b *Builder) {
		b.policy = p
	}
}

// WithOutput sets the field that receives every generated line.
func WithOutput(o Output) Option {
	return func(b *Builder) {
		b.output = o
	}
}

// WithNotifier sets the collaborator told about rejected entries.
func WithNotifier(n Notifier) Option {
	return func(b *Builder) {
		b.notifier = n
	}
}

// WithRegistry registers the builder's metrics in r instead of a private
// registry.
func WithRegistry(r metrics.Registry) Option {
	return func(b *Builder) {
		b.metrics = NewMetrics(r)
	}
}

// New returns a Builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		policy:   PolicyStrict,
		output:   Discard,
		notifier: AlertNotifier{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.metrics == nil {
		b.metrics = NewMetrics(metrics.NewRegistry())
	}
	return b
}

// Policy returns the builder's empty field policy.
func (b *Builder) Policy() Policy {
	return b.policy
}

// Metrics returns the builder's counters.
func (b *Builder) Metrics() *Metrics {
	return b.metrics
}

// Build returns the fstab line for e and writes it to the output field.
//
// If the device or mount point is empty after trimming, the notifier is
// given a *spec.ValidationError. Under PolicyStrict that error is also
// returned and nothing is written; under PolicyPermissive the line is
// built anyway.
func (b *Builder) Build(e spec.MountEntry) (string, error) {
	defer b.metrics.Duration.UpdateSince(time.Now())

	e = e.Trimmed()
	if err := spec.Validate(e); err != nil {
		b.metrics.Rejected.Inc(1)
		b.notifier.Notify(err)
		if b.policy == PolicyStrict || !spec.IsValidationError(err) {
			debug.Printf("rejected entry (%s): %v", b.policy, err)
			return "", err
		}
		debug.Printf("emitting incomplete entry (%s): %v", b.policy, err)
	}

	line := mntent.FromMountEntry(e).String()
	b.output.SetOutput(line)
	b.metrics.Generated.Inc(1)
	debug.Printf("generated %q", line)
	return line, nil
}
