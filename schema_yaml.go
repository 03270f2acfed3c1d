package jsonish

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// schemaDoc is the on-disk shape a schema document is decoded into before
// being built into a *Schema tree. Only one of Fields/Element/Key+Value/
// Options/Variants/Literal is meaningful for a given Kind, mirroring
// Schema's own tagged-union layout.
type schemaDoc struct {
	Kind     string               `yaml:"kind" json:"kind"`
	Name     string               `yaml:"name,omitempty" json:"name,omitempty"`
	Fields   []schemaFieldDoc     `yaml:"fields,omitempty" json:"fields,omitempty"`
	Element  *schemaDoc           `yaml:"element,omitempty" json:"element,omitempty"`
	Key      *schemaDoc           `yaml:"key,omitempty" json:"key,omitempty"`
	Value    *schemaDoc           `yaml:"value,omitempty" json:"value,omitempty"`
	Options  []*schemaDoc         `yaml:"options,omitempty" json:"options,omitempty"`
	Inner    *schemaDoc           `yaml:"inner,omitempty" json:"inner,omitempty"`
	Variants []string             `yaml:"variants,omitempty" json:"variants,omitempty"`
	Literal  any                  `yaml:"literal,omitempty" json:"literal,omitempty"`
	Default  any                  `yaml:"default,omitempty" json:"default,omitempty"`
	Min      *float64             `yaml:"min,omitempty" json:"min,omitempty"`
	Max      *float64             `yaml:"max,omitempty" json:"max,omitempty"`
	MinLen   *int                 `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	MaxLen   *int                 `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
}

type schemaFieldDoc struct {
	Name   string    `yaml:"name" json:"name"`
	Schema schemaDoc `yaml:"schema" json:"schema"`
}

// LoadSchemaYAML decodes a YAML schema document (see cmd/jsonish's --schema
// flag) into a *Schema tree.
func LoadSchemaYAML(data []byte) (*Schema, error) {
	var doc schemaDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding schema document: %w", err)
	}
	return buildSchema(&doc)
}

func buildSchema(d *schemaDoc) (*Schema, error) {
	if d == nil {
		return nil, fmt.Errorf("nil schema node")
	}

	var keywords []Keyword
	if d.Min != nil {
		keywords = append(keywords, Min(*d.Min))
	}
	if d.Max != nil {
		keywords = append(keywords, Max(*d.Max))
	}
	if d.MinLen != nil {
		keywords = append(keywords, MinLen(*d.MinLen))
	}
	if d.MaxLen != nil {
		keywords = append(keywords, MaxLen(*d.MaxLen))
	}

	switch d.Kind {
	case "string":
		return String(keywords...), nil
	case "int":
		return Int(keywords...), nil
	case "float":
		return Float(keywords...), nil
	case "bool":
		return Bool(), nil
	case "null":
		return Null(), nil
	case "literal":
		return Literal(d.Literal), nil
	case "enum":
		return NamedEnum(d.Name, d.Variants...), nil
	case "array":
		element, err := buildSchema(d.Element)
		if err != nil {
			return nil, fmt.Errorf("array element: %w", err)
		}
		return Array(element), nil
	case "map":
		key, err := buildSchema(d.Key)
		if err != nil {
			return nil, fmt.Errorf("map key: %w", err)
		}
		value, err := buildSchema(d.Value)
		if err != nil {
			return nil, fmt.Errorf("map value: %w", err)
		}
		return Map(key, value), nil
	case "object":
		fields := make([]Field, 0, len(d.Fields))
		for _, fd := range d.Fields {
			fs, err := buildSchema(&fd.Schema)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", fd.Name, err)
			}
			fields = append(fields, F(fd.Name, fs))
		}
		return Object(d.Name, fields...), nil
	case "union":
		options := make([]*Schema, 0, len(d.Options))
		for i, od := range d.Options {
			os, err := buildSchema(od)
			if err != nil {
				return nil, fmt.Errorf("union option %d: %w", i, err)
			}
			options = append(options, os)
		}
		return Union(options...), nil
	case "optional":
		inner, err := buildSchema(d.Inner)
		if err != nil {
			return nil, err
		}
		return Optional(inner), nil
	case "nullable":
		inner, err := buildSchema(d.Inner)
		if err != nil {
			return nil, err
		}
		return Nullable(inner), nil
	case "default":
		inner, err := buildSchema(d.Inner)
		if err != nil {
			return nil, err
		}
		return Default(inner, d.Default), nil
	default:
		return nil, fmt.Errorf("unknown schema kind %q", d.Kind)
	}
}
