package flowdoc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Write 将文档序列化为 .docx（WordprocessingML zip 包）写入 w
func Write(w io.Writer, doc *Document) error {
	if doc == nil {
		doc = &Document{}
	}

	body, extraStyles, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		data []byte
	}{
		{partContentTypes, []byte(contentTypesXML)},
		{partRootRels, []byte(rootRelsXML)},
		{partDocumentRels, []byte(documentRelsXML)},
		{partStyles, []byte(stylesWithExtras(extraStyles))},
		{partNumbering, []byte(numberingXML)},
		{partDocument, body},
	}
	for _, p := range parts {
		fw, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := fw.Write(p.data); err != nil {
			return fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	return zw.Close()
}

// styleID maps a display name onto a style ID, registering unknown names in
// extras so that styles.xml can declare them.
func styleID(name string, extras map[string]string) string {
	if id, ok := styleIDs[name]; ok {
		return id
	}
	id := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, name)
	if id == "" {
		return styleIDNormal
	}
	extras[name] = id
	return id
}

func stylesWithExtras(extras map[string]string) string {
	if len(extras) == 0 {
		return stylesXML
	}
	var sb strings.Builder
	names := make([]string, 0, len(extras))
	for name := range extras {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(`<w:style w:type="paragraph" w:styleId="`)
		xml.EscapeText(&sb, []byte(extras[name]))
		sb.WriteString(`"><w:name w:val="`)
		xml.EscapeText(&sb, []byte(name))
		sb.WriteString(`"/><w:basedOn w:val="Normal"/></w:style>`)
	}
	return strings.Replace(stylesXML, "</w:styles>", sb.String()+"</w:styles>", 1)
}

// xmlWriter 对 xml.Encoder 的薄封装，记录第一个错误
type xmlWriter struct {
	enc *xml.Encoder
	err error
}

func (x *xmlWriter) start(name string, attrs ...xml.Attr) {
	if x.err != nil {
		return
	}
	x.err = x.enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (x *xmlWriter) end(name string) {
	if x.err != nil {
		return
	}
	x.err = x.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
}

func (x *xmlWriter) empty(name string, attrs ...xml.Attr) {
	x.start(name, attrs...)
	x.end(name)
}

func (x *xmlWriter) text(s string) {
	if x.err != nil {
		return
	}
	x.err = x.enc.EncodeToken(xml.CharData(s))
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func val(v string) xml.Attr {
	return attr("w:val", v)
}

func encodeDocument(doc *Document) ([]byte, map[string]string, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)

	extras := make(map[string]string)
	x := &xmlWriter{enc: xml.NewEncoder(&buf)}

	x.start("w:document", attr("xmlns:w", nsW), attr("xmlns:r", nsR))
	x.start("w:body")
	for _, p := range doc.Paragraphs {
		x.start("w:p")
		if id := styleID(p.Style, extras); id != styleIDNormal {
			x.start("w:pPr")
			x.empty("w:pStyle", val(id))
			x.end("w:pPr")
		}
		for _, r := range p.Runs {
			writeRun(x, r)
		}
		x.end("w:p")
	}
	// US Letter, 1 inch margins.
	x.start("w:sectPr")
	x.empty("w:pgSz", attr("w:w", "12240"), attr("w:h", "15840"))
	x.empty("w:pgMar", attr("w:top", "1440"), attr("w:right", "1440"), attr("w:bottom", "1440"), attr("w:left", "1440"))
	x.end("w:sectPr")
	x.end("w:body")
	x.end("w:document")

	if x.err == nil {
		x.err = x.enc.Flush()
	}
	if x.err != nil {
		return nil, nil, fmt.Errorf("encode document.xml: %w", x.err)
	}
	return buf.Bytes(), extras, nil
}

func writeRun(x *xmlWriter, r Run) {
	x.start("w:r")
	writeRunProps(x, r)

	// 文本中的换行和制表符分别写成 <w:br/> 与 <w:tab/>
	text := r.Text
	for text != "" {
		i := strings.IndexAny(text, "\n\t")
		if i < 0 {
			writeText(x, text)
			break
		}
		if i > 0 {
			writeText(x, text[:i])
		}
		if text[i] == '\n' {
			x.empty("w:br")
		} else {
			x.empty("w:tab")
		}
		text = text[i+1:]
	}
	x.end("w:r")
}

func writeText(x *xmlWriter, s string) {
	x.start("w:t", attr("xml:space", "preserve"))
	x.text(s)
	x.end("w:t")
}

func writeRunProps(x *xmlWriter, r Run) {
	if r.Font == "" && r.SizePt <= 0 && r.Bold == nil && r.Italic == nil && r.Underline == nil && r.Color == nil {
		return
	}
	// 子元素顺序遵循 CT_RPr：rFonts, b, i, color, sz, szCs, u
	x.start("w:rPr")
	if r.Font != "" {
		x.empty("w:rFonts", attr("w:ascii", r.Font), attr("w:hAnsi", r.Font), attr("w:cs", r.Font), attr("w:eastAsia", r.Font))
	}
	if r.Bold != nil {
		writeToggle(x, "w:b", *r.Bold)
	}
	if r.Italic != nil {
		writeToggle(x, "w:i", *r.Italic)
	}
	if r.Color != nil {
		x.empty("w:color", val(fmt.Sprintf("%02X%02X%02X", r.Color.R, r.Color.G, r.Color.B)))
	}
	if r.SizePt > 0 {
		half := strconv.Itoa(int(math.Round(r.SizePt * 2)))
		x.empty("w:sz", val(half))
		x.empty("w:szCs", val(half))
	}
	if r.Underline != nil {
		if *r.Underline {
			x.empty("w:u", val("single"))
		} else {
			x.empty("w:u", val("none"))
		}
	}
	x.end("w:rPr")
}

func writeToggle(x *xmlWriter, name string, on bool) {
	if on {
		x.empty(name)
		return
	}
	x.empty(name, val("0"))
}
