// Copyright 2026 The Protobluff-Go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fixture loads YAML-described message schemas and protoscope wire
// payloads into descriptor.Message trees and byte buffers, for table-driven
// tests of the cursor/field/message layer. Mirrors the teacher's
// internal/testdata loader, trimmed to this module's own descriptor shape.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/protocolbuffers/protoscope"
	"gopkg.in/yaml.v3"

	"github.com/squidfunk/protobluff-go/descriptor"
	"github.com/squidfunk/protobluff-go/wire"
)

// FieldSpec describes one field of a [MessageSpec].
type FieldSpec struct {
	Tag     uint32 `yaml:"tag"`
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Label   string `yaml:"label"`
	Packed  bool   `yaml:"packed"`
	Default string `yaml:"default"` // protoscope snippet, empty means no default
	Message string `yaml:"message"` // name of another MessageSpec in this Case, for MESSAGE fields
}

// MessageSpec describes one named message schema.
type MessageSpec struct {
	Name   string      `yaml:"name"`
	Fields []FieldSpec `yaml:"fields"`
}

// Case is one fixture: a set of named message schemas (the first is the
// root) plus a protoscope-encoded starting buffer.
type Case struct {
	Name       string        `yaml:"name"`
	Messages   []MessageSpec `yaml:"messages"`
	Protoscope string        `yaml:"protoscope"`

	Root  *descriptor.Message `yaml:"-"`
	Bytes []byte              `yaml:"-"`
}

// Load reads every *.yaml file in dir and compiles each into a []Case.
func Load(dir string) ([]Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var all []Case
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		cases, err := loadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("fixture: %s: %w", e.Name(), err)
		}
		all = append(all, cases...)
	}
	return all, nil
}

func loadFile(path string) ([]Case, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cases []Case
	if err := yaml.Unmarshal(raw, &cases); err != nil {
		return nil, err
	}
	for i := range cases {
		if err := cases[i].compile(); err != nil {
			return nil, fmt.Errorf("case %q: %w", cases[i].Name, err)
		}
	}
	return cases, nil
}

func (c *Case) compile() error {
	if len(c.Messages) == 0 {
		return fmt.Errorf("no messages")
	}
	built := make(map[string]*descriptor.Message, len(c.Messages))
	for _, spec := range c.Messages {
		built[spec.Name] = &descriptor.Message{}
	}
	for _, spec := range c.Messages {
		msg := built[spec.Name]
		fields := make([]descriptor.Field, len(spec.Fields))
		for i, fs := range spec.Fields {
			fd, err := compileField(fs, built)
			if err != nil {
				return fmt.Errorf("field %q: %w", fs.Name, err)
			}
			fields[i] = fd
		}
		msg.Fields = fields
	}
	c.Root = built[c.Messages[0].Name]

	if c.Protoscope != "" {
		s := protoscope.NewScanner(c.Protoscope)
		b, err := s.Exec()
		if err != nil {
			return fmt.Errorf("protoscope: %w", err)
		}
		c.Bytes = b
	}
	return nil
}

func compileField(fs FieldSpec, built map[string]*descriptor.Message) (descriptor.Field, error) {
	t, err := schemaType(fs.Type)
	if err != nil {
		return descriptor.Field{}, err
	}
	label, err := label(fs.Label)
	if err != nil {
		return descriptor.Field{}, err
	}
	fd := descriptor.Field{Tag: fs.Tag, Name: fs.Name, Type: t, Label: label, Packed: fs.Packed}
	if t == wire.Message {
		sub, ok := built[fs.Message]
		if !ok {
			return descriptor.Field{}, fmt.Errorf("unknown nested message %q", fs.Message)
		}
		fd.Message = sub
	}
	if fs.Default != "" {
		s := protoscope.NewScanner(fs.Default)
		b, err := s.Exec()
		if err != nil {
			return descriptor.Field{}, fmt.Errorf("default: %w", err)
		}
		fd.Default = b
	}
	return fd, nil
}

func schemaType(s string) (wire.SchemaType, error) {
	switch s {
	case "UINT32":
		return wire.Uint32, nil
	case "UINT64":
		return wire.Uint64, nil
	case "INT32":
		return wire.Int32, nil
	case "INT64":
		return wire.Int64, nil
	case "SINT32":
		return wire.Sint32, nil
	case "SINT64":
		return wire.Sint64, nil
	case "BOOL":
		return wire.Bool, nil
	case "FLOAT":
		return wire.Float, nil
	case "DOUBLE":
		return wire.Double, nil
	case "FIXED32":
		return wire.Fixed32Type, nil
	case "SFIXED32":
		return wire.Sfixed32, nil
	case "FIXED64":
		return wire.Fixed64Type, nil
	case "SFIXED64":
		return wire.Sfixed64, nil
	case "STRING":
		return wire.String, nil
	case "BYTES":
		return wire.BytesType, nil
	case "ENUM":
		return wire.Enum, nil
	case "MESSAGE":
		return wire.Message, nil
	default:
		return 0, fmt.Errorf("unknown type %q", s)
	}
}

func label(s string) (wire.Label, error) {
	switch s {
	case "", "OPTIONAL":
		return wire.Optional, nil
	case "REQUIRED":
		return wire.Required, nil
	case "REPEATED":
		return wire.Repeated, nil
	case "ONEOF":
		return wire.Oneof, nil
	default:
		return 0, fmt.Errorf("unknown label %q", s)
	}
}
