// Package deckfile loads card decks from YAML or JSON files.
package deckfile

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcus/swipedeck/internal/models"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyID       = errors.New("card has no id")
	ErrDuplicateID   = errors.New("duplicate card id")
	ErrUnknownFormat = errors.New("unknown deck format")
)

// maxParallelReads bounds concurrent file reads in Load.
const maxParallelReads = 4

// Deck is a named, ordered set of cards
type Deck struct {
	Name   string
	Cards  []models.Card
	Source []string
}

// ID returns a short fingerprint of the deck's card ids, in order.
// Two decks with the same cards in the same order share an ID.
func (d *Deck) ID() string {
	return Fingerprint(d.Cards)
}

// Document is the on-disk shape: either a mapping with name and cards, or a
// bare list of cards.
type Document struct {
	Name  string        `json:"name" yaml:"name"`
	Cards []models.Card `json:"cards" yaml:"cards"`
}

// Load reads and concatenates deck files in the given order
func Load(ctx context.Context, paths ...string) (*Deck, error) {
	if len(paths) == 0 {
		return nil, errors.New("no deck files given")
	}

	docs := make([]Document, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := readFile(path)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	deck := &Deck{Source: paths}
	var names []string
	for i, doc := range docs {
		name := doc.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(paths[i]), filepath.Ext(paths[i]))
		}
		names = append(names, name)
		deck.Cards = append(deck.Cards, doc.Cards...)
	}
	deck.Name = strings.Join(names, "+")

	if err := Validate(deck.Cards); err != nil {
		return nil, err
	}
	return deck, nil
}

func readFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read deck %s: %w", path, err)
	}
	doc, err := Parse(filepath.Ext(path), data)
	if err != nil {
		return Document{}, fmt.Errorf("parse deck %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a deck document. ext selects the format (".json", ".yaml",
// ".yml").
func Parse(ext string, data []byte) (Document, error) {
	var doc Document
	switch strings.ToLower(ext) {
	case ".json":
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			err := json.Unmarshal(trimmed, &doc.Cards)
			return doc, err
		}
		err := json.Unmarshal(trimmed, &doc)
		return doc, err
	case ".yaml", ".yml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return doc, err
		}
		if len(node.Content) == 0 {
			return doc, nil
		}
		root := node.Content[0]
		if root.Kind == yaml.SequenceNode {
			err := root.Decode(&doc.Cards)
			return doc, err
		}
		err := root.Decode(&doc)
		return doc, err
	default:
		return doc, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// Validate checks that every card has a unique, non-empty id
func Validate(cards []models.Card) error {
	seen := make(map[string]int, len(cards))
	for i, c := range cards {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			return fmt.Errorf("card %d (%q): %w", i+1, c.Title, ErrEmptyID)
		}
		if first, ok := seen[id]; ok {
			return fmt.Errorf("%w %q at positions %d and %d", ErrDuplicateID, id, first+1, i+1)
		}
		seen[id] = i
	}
	return nil
}

// Fingerprint hashes the ordered card ids into a short hex string
func Fingerprint(cards []models.Card) string {
	h, _ := blake2b.New256(nil)
	for _, c := range cards {
		h.Write([]byte(c.ID))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
