package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jask/showcase/internal/carousel"
)

// Entry is one item in a YAML item file.
type Entry struct {
	Placement string `yaml:"placement,omitempty"`
	Image     string `yaml:"image"`
	Link      string `yaml:"link,omitempty"`
	Title     string `yaml:"title,omitempty"`
	Inactive  bool   `yaml:"inactive,omitempty"`
}

type document struct {
	Items []Entry `yaml:"items"`
}

// DecodeEntries reads an item file. Entries without a placement default to
// "featured"; entries without an image are rejected.
func DecodeEntries(r io.Reader) ([]Entry, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode items: %w", err)
	}
	for i := range doc.Items {
		e := &doc.Items[i]
		e.Image = strings.TrimSpace(e.Image)
		if e.Image == "" {
			return nil, fmt.Errorf("item %d: image required", i+1)
		}
		if e.Placement == "" {
			e.Placement = "featured"
		}
	}
	return doc.Items, nil
}

// EncodeEntries writes entries in the item file format.
func EncodeEntries(w io.Writer, entries []Entry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Items: entries}); err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	return enc.Close()
}

// File serves items from a YAML file, re-read on every Load.
type File struct {
	Path string
}

func (s File) Load(_ context.Context, placement string) ([]carousel.Item, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open items file: %w", err)
	}
	defer f.Close()
	entries, err := DecodeEntries(f)
	if err != nil {
		return nil, err
	}
	var out []carousel.Item
	for _, e := range entries {
		if e.Placement != placement || e.Inactive {
			continue
		}
		out = append(out, carousel.Item{ImageRef: e.Image, Link: e.Link, Title: e.Title})
	}
	return out, nil
}
