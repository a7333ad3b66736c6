// Package derivation reads and writes ranked CCG derivation documents and
// turns a selected derivation into an immutable tree.
package derivation

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Root is the top element of a parser output document.
type Root struct {
	XMLName  xml.Name   `xml:"root"`
	Document Document   `xml:"document"`
	Attrs    []xml.Attr `xml:",any,attr"`
}

type Document struct {
	ID        string      `xml:"id,attr,omitempty"`
	Sentences []*Sentence `xml:"sentences>sentence"`
}

// Sentence holds the tokens and ranked derivations of one sentence plus any
// semantics blocks appended by composition.
type Sentence struct {
	ID        string      `xml:"id,attr"`
	GoldTree  string      `xml:"gold_tree,attr,omitempty"`
	Attrs     []xml.Attr  `xml:",any,attr"`
	Text      string      `xml:",chardata"`
	Tokens    []Token     `xml:"tokens>token"`
	CCGs      []CCG       `xml:"ccg"`
	Semantics []Semantics `xml:"semantics"`
}

type Token struct {
	ID       string     `xml:"id,attr"`
	Surf     string     `xml:"surf,attr"`
	Base     string     `xml:"base,attr,omitempty"`
	POS      string     `xml:"pos,attr,omitempty"`
	Category string     `xml:"category,attr,omitempty"`
	Attrs    []xml.Attr `xml:",any,attr"`
}

// CCG is one ranked derivation. Rank follows document order starting at 1.
type CCG struct {
	ID    string     `xml:"id,attr"`
	Root  string     `xml:"root,attr"`
	Attrs []xml.Attr `xml:",any,attr"`
	Spans []Span     `xml:"span"`
}

type Span struct {
	ID       string     `xml:"id,attr"`
	Category string     `xml:"category,attr"`
	Rule     string     `xml:"rule,attr,omitempty"`
	Child    string     `xml:"child,attr,omitempty"`
	Terminal string     `xml:"terminal,attr,omitempty"`
	Attrs    []xml.Attr `xml:",any,attr"`
}

// Semantics is the result block written for each attempted derivation.
type Semantics struct {
	Status string    `xml:"status,attr"`
	CCGID  string    `xml:"ccg_id,attr,omitempty"`
	Rank   int       `xml:"rank,attr,omitempty"`
	Root   string    `xml:"root,attr,omitempty"`
	Spans  []SemSpan `xml:"span"`
}

type SemSpan struct {
	ID    string `xml:"id,attr"`
	Child string `xml:"child,attr,omitempty"`
	Sem   string `xml:"sem,attr"`
	Type  string `xml:"type,attr,omitempty"`
}

// Sentences returns the sentence units of the document in order.
func (r *Root) Sentences() []*Sentence {
	return r.Document.Sentences
}

// Gold returns the zero-based gold derivation index, if annotated.
func (s *Sentence) Gold() (int, bool) {
	if s.GoldTree == "" {
		return 0, false
	}
	g, err := strconv.Atoi(s.GoldTree)
	if err != nil || g < 0 {
		return 0, false
	}
	return g, true
}

// Surface joins the token surfaces with spaces.
func (s *Sentence) Surface() string {
	surf := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		surf[i] = t.Surf
	}
	return strings.Join(surf, " ")
}

// Read decodes a derivation document.
func Read(r io.Reader) (*Root, error) {
	var root Root
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode derivation document: %w", err)
	}
	for _, s := range root.Sentences() {
		s.Text = strings.TrimSpace(s.Text)
	}
	return &root, nil
}

func ReadFile(path string) (*Root, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Write encodes root with an XML declaration.
func Write(w io.Writer, root *Root) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode derivation document: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func WriteFile(path string, root *Root) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, root); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
