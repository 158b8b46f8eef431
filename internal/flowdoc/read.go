package flowdoc

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrNoDocumentPart is returned when the package has no word/document.xml.
var ErrNoDocumentPart = errors.New("flowdoc: package has no word/document.xml")

// Read 解析 .docx 包
//
// 段落样式 ID 通过 word/styles.xml 映射为显示名；styles.xml 缺失时直接使用 ID。
func Read(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("flowdoc: open package: %w", err)
	}

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	table := styleTable{names: map[string]string{}, defaultName: StyleNormal}
	if f, ok := files[partStyles]; ok {
		if err := withPart(f, table.parse); err != nil {
			return nil, fmt.Errorf("flowdoc: parse %s: %w", partStyles, err)
		}
	}

	f, ok := files[partDocument]
	if !ok {
		return nil, ErrNoDocumentPart
	}
	var doc *Document
	err = withPart(f, func(rc io.Reader) error {
		var perr error
		doc, perr = parseDocument(rc, &table)
		return perr
	})
	if err != nil {
		return nil, fmt.Errorf("flowdoc: parse %s: %w", partDocument, err)
	}
	return doc, nil
}

func withPart(f *zip.File, fn func(io.Reader) error) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return fn(rc)
}

// styleTable maps paragraph style IDs to display names.
type styleTable struct {
	names       map[string]string
	defaultName string
}

func (t *styleTable) name(id string) string {
	if id == "" {
		return t.defaultName
	}
	if n, ok := t.names[id]; ok {
		return n
	}
	return id
}

func attrVal(se xml.StartElement, local string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func (t *styleTable) parse(r io.Reader) error {
	dec := xml.NewDecoder(r)
	var (
		inStyle   bool
		id        string
		isDefault bool
		isPara    bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "style":
				inStyle = true
				id, _ = attrVal(se, "styleId")
				typ, _ := attrVal(se, "type")
				isPara = typ == "paragraph" || typ == ""
				d, _ := attrVal(se, "default")
				isDefault = d == "1" || d == "true"
			case "name":
				if inStyle && isPara {
					n, _ := attrVal(se, "val")
					t.names[id] = n
					if isDefault {
						t.defaultName = n
					}
				}
			}
		case xml.EndElement:
			if se.Name.Local == "style" {
				inStyle = false
			}
		}
	}
}

// docParser 流式遍历 document.xml
type docParser struct {
	doc    *Document
	styles *styleTable

	para  *Paragraph
	run   *Run
	inRPr bool
	inPPr bool
	inT   bool
	depth int // nesting depth of w:p, text boxes may contain paragraphs
}

func parseDocument(r io.Reader, styles *styleTable) (*Document, error) {
	p := &docParser{doc: &Document{}, styles: styles}
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			p.onStart(t)
		case xml.EndElement:
			p.onEnd(t)
		case xml.CharData:
			if p.inT && p.run != nil {
				p.run.Text += string(t)
			}
		}
	}
	return p.doc, nil
}

func (p *docParser) onStart(se xml.StartElement) {
	switch se.Name.Local {
	case "p":
		p.depth++
		if p.depth == 1 {
			p.para = &Paragraph{Style: p.styles.name("")}
		}
	case "pPr":
		p.inPPr = true
	case "pStyle":
		if p.inPPr && p.para != nil && p.run == nil {
			id, _ := attrVal(se, "val")
			p.para.Style = p.styles.name(id)
		}
	case "r":
		if p.para != nil && p.depth == 1 {
			p.run = &Run{}
		}
	case "rPr":
		p.inRPr = p.run != nil && p.depth == 1
	case "t":
		p.inT = p.run != nil && p.depth == 1
	case "br", "cr":
		if p.run != nil && !p.inRPr && p.depth == 1 {
			p.run.Text += "\n"
		}
	case "tab":
		if p.run != nil && !p.inRPr && !p.inPPr && p.depth == 1 {
			p.run.Text += "\t"
		}
	default:
		if p.inRPr {
			p.onRunProp(se)
		}
	}
}

func (p *docParser) onEnd(ee xml.EndElement) {
	switch ee.Name.Local {
	case "p":
		if p.depth == 1 && p.para != nil {
			p.doc.Paragraphs = append(p.doc.Paragraphs, *p.para)
			p.para = nil
		}
		p.depth--
	case "pPr":
		p.inPPr = false
	case "r":
		if p.depth != 1 {
			return
		}
		if p.run != nil && p.para != nil {
			p.para.Runs = append(p.para.Runs, *p.run)
		}
		p.run = nil
	case "rPr":
		p.inRPr = false
	case "t":
		p.inT = false
	}
}

func (p *docParser) onRunProp(se xml.StartElement) {
	v, hasVal := attrVal(se, "val")
	switch se.Name.Local {
	case "rFonts":
		for _, key := range []string{"ascii", "hAnsi", "cs", "eastAsia"} {
			if f, ok := attrVal(se, key); ok && f != "" {
				p.run.Font = f
				break
			}
		}
	case "sz":
		if half, err := strconv.ParseFloat(v, 64); err == nil && half > 0 {
			p.run.SizePt = half / 2
		}
	case "b":
		p.run.Bold = Flag(onOff(v, hasVal))
	case "i":
		p.run.Italic = Flag(onOff(v, hasVal))
	case "u":
		p.run.Underline = Flag(!hasVal || v != "none")
	case "color":
		if c, ok := parseHexColor(v); ok {
			p.run.Color = &c
		}
	}
}

// onOff interprets an ST_OnOff attribute; a bare element means on.
func onOff(v string, present bool) bool {
	if !present {
		return true
	}
	switch strings.ToLower(v) {
	case "0", "false", "off":
		return false
	}
	return true
}

func parseHexColor(v string) (RGB, bool) {
	if v == "" || strings.EqualFold(v, "auto") {
		return RGB{}, false
	}
	c, err := colorful.Hex("#" + v)
	if err != nil {
		return RGB{}, false
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, true
}
