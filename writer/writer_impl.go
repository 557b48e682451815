package writer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/sushgiri-7/pdf-editor/ir/raw"
	"github.com/sushgiri-7/pdf-editor/ir/semantic"
)

type impl struct{}

func (w *impl) Write(ctx context.Context, doc *semantic.Document, out io.Writer, cfg Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	version := cfg.Version
	if version == "" {
		version = "1.7"
	}

	objects := make(map[raw.ObjectRef]raw.Object)
	objNum := 1
	nextRef := func() raw.ObjectRef {
		ref := raw.ObjectRef{Num: objNum, Gen: 0}
		objNum++
		return ref
	}

	catalogRef := nextRef()
	pagesRef := nextRef()

	// Single shared Type1 font resource; every page's text uses it.
	fontRef := nextRef()
	fontDict := raw.Dict()
	fontDict.Set("Type", raw.NameLiteral("Font"))
	fontDict.Set("Subtype", raw.NameLiteral("Type1"))
	fontDict.Set("BaseFont", raw.NameLiteral(baseFontName(doc)))
	objects[fontRef] = fontDict

	pageRefs := make([]raw.ObjectRef, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		// Image XObjects, soft masks first so the image dict can refer
		// to them.
		xobjRefs := map[string]raw.ObjectRef{}
		if p.Resources != nil {
			names := make([]string, 0, len(p.Resources.XObjects))
			for name := range p.Resources.XObjects {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				xo := p.Resources.XObjects[name]
				var smaskRef *raw.ObjectRef
				if xo.SMask != nil {
					ref := nextRef()
					obj, err := imageObject(*xo.SMask, nil)
					if err != nil {
						return err
					}
					objects[ref] = obj
					smaskRef = &ref
				}
				ref := nextRef()
				obj, err := imageObject(xo, smaskRef)
				if err != nil {
					return err
				}
				objects[ref] = obj
				xobjRefs[name] = ref
			}
		}

		// Content stream
		contentData := []byte{}
		for _, cs := range p.Contents {
			contentData = append(contentData, serializeContentStream(cs)...)
		}
		contentRef := nextRef()
		contentDict := raw.Dict()
		if cfg.CompressContent && len(contentData) > 0 {
			enc, err := flateEncode(contentData)
			if err != nil {
				return fmt.Errorf("compress content: %w", err)
			}
			contentDict.Set("Filter", raw.NameLiteral("FlateDecode"))
			contentData = enc
		}
		contentDict.Set("Length", raw.NumberInt(int64(len(contentData))))
		objects[contentRef] = raw.NewStream(contentDict, contentData)

		// Page dict
		pageRef := nextRef()
		pageRefs = append(pageRefs, pageRef)
		pageDict := raw.Dict()
		pageDict.Set("Type", raw.NameLiteral("Page"))
		pageDict.Set("Parent", raw.Ref(pagesRef.Num, pagesRef.Gen))
		pageDict.Set("MediaBox", raw.NewArray(
			raw.NumberFloat(p.MediaBox.LLX),
			raw.NumberFloat(p.MediaBox.LLY),
			raw.NumberFloat(p.MediaBox.URX),
			raw.NumberFloat(p.MediaBox.URY),
		))
		resDict := raw.Dict()
		fontResDict := raw.Dict()
		fontResDict.Set("F1", raw.Ref(fontRef.Num, fontRef.Gen))
		resDict.Set("Font", fontResDict)
		if len(xobjRefs) > 0 {
			xoDict := raw.Dict()
			for name, ref := range xobjRefs {
				xoDict.Set(name, raw.Ref(ref.Num, ref.Gen))
			}
			resDict.Set("XObject", xoDict)
		}
		pageDict.Set("Resources", resDict)
		pageDict.Set("Contents", raw.Ref(contentRef.Num, contentRef.Gen))
		objects[pageRef] = pageDict
	}

	// Pages tree
	kidsArr := raw.NewArray()
	for _, r := range pageRefs {
		kidsArr.Append(raw.Ref(r.Num, r.Gen))
	}
	pagesDict := raw.Dict()
	pagesDict.Set("Type", raw.NameLiteral("Pages"))
	pagesDict.Set("Count", raw.NumberInt(int64(len(pageRefs))))
	pagesDict.Set("Kids", kidsArr)
	objects[pagesRef] = pagesDict

	// Catalog
	catalogDict := raw.Dict()
	catalogDict.Set("Type", raw.NameLiteral("Catalog"))
	catalogDict.Set("Pages", raw.Ref(pagesRef.Num, pagesRef.Gen))
	objects[catalogRef] = catalogDict

	// Info
	var infoRef *raw.ObjectRef
	if doc.Info != nil {
		ref := nextRef()
		infoDict := raw.Dict()
		setInfoString(infoDict, "Title", doc.Info.Title)
		setInfoString(infoDict, "Author", doc.Info.Author)
		setInfoString(infoDict, "Subject", doc.Info.Subject)
		setInfoString(infoDict, "Creator", doc.Info.Creator)
		setInfoString(infoDict, "Producer", doc.Info.Producer)
		objects[ref] = infoDict
		infoRef = &ref
	}

	// Serialize
	var buf bytes.Buffer
	buf.WriteString("%PDF-" + version + "\n%\xE2\xE3\xCF\xD3\n")
	offsets := make(map[int]int64)

	ordered := make([]raw.ObjectRef, 0, len(objects))
	for ref := range objects {
		ordered = append(ordered, ref)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Num < ordered[j].Num })
	for _, ref := range ordered {
		offsets[ref.Num] = int64(buf.Len())
		buf.Write(serializeObject(ref, objects[ref]))
	}

	// XRef
	xrefOffset := buf.Len()
	maxObjNum := ordered[len(ordered)-1].Num
	fmt.Fprintf(&buf, "xref\n0 %d\n", maxObjNum+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= maxObjNum; i++ {
		if off, ok := offsets[i]; ok {
			fmt.Fprintf(&buf, "%010d 00000 n \n", off)
		} else {
			buf.WriteString("0000000000 65535 f \n")
		}
	}

	// Trailer
	buf.WriteString("trailer\n<<")
	fmt.Fprintf(&buf, "/Size %d ", maxObjNum+1)
	fmt.Fprintf(&buf, "/Root %d 0 R", catalogRef.Num)
	if infoRef != nil {
		fmt.Fprintf(&buf, " /Info %d 0 R", infoRef.Num)
	}
	fmt.Fprintf(&buf, ">>\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	_, err := out.Write(buf.Bytes())
	return err
}

func baseFontName(doc *semantic.Document) string {
	for _, p := range doc.Pages {
		if p.Resources == nil {
			continue
		}
		for _, f := range p.Resources.Fonts {
			if f != nil && f.BaseFont != "" {
				return f.BaseFont
			}
		}
	}
	return "Helvetica"
}

func imageObject(img semantic.XObject, smaskRef *raw.ObjectRef) (raw.Object, error) {
	data, err := flateEncode(img.Data)
	if err != nil {
		return nil, fmt.Errorf("compress image: %w", err)
	}
	dict := raw.Dict()
	dict.Set("Type", raw.NameLiteral("XObject"))
	dict.Set("Subtype", raw.NameLiteral("Image"))
	dict.Set("Width", raw.NumberInt(int64(img.Width)))
	dict.Set("Height", raw.NumberInt(int64(img.Height)))
	dict.Set("ColorSpace", raw.NameLiteral(img.ColorSpace))
	dict.Set("BitsPerComponent", raw.NumberInt(int64(img.BitsPerComponent)))
	dict.Set("Filter", raw.NameLiteral("FlateDecode"))
	dict.Set("Length", raw.NumberInt(int64(len(data))))
	if img.Interpolate {
		dict.Set("Interpolate", raw.Bool(true))
	}
	if smaskRef != nil {
		dict.Set("SMask", raw.Ref(smaskRef.Num, smaskRef.Gen))
	}
	return raw.NewStream(dict, data), nil
}

func setInfoString(dict *raw.DictObj, key, value string) {
	if value != "" {
		dict.Set(key, raw.Str([]byte(value)))
	}
}

func serializeObject(ref raw.ObjectRef, obj raw.Object) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d %d obj\n", ref.Num, ref.Gen)
	buf.Write(serializePrimitive(obj))
	buf.WriteString("\nendobj\n")
	return buf.Bytes()
}

func serializePrimitive(o raw.Object) []byte {
	switch v := o.(type) {
	case raw.NameObj:
		return []byte("/" + v.Value())
	case raw.NumberObj:
		if v.IsInteger() {
			return []byte(fmt.Sprintf("%d", v.Int()))
		}
		return []byte(formatNumber(v.Float()))
	case raw.BoolObj:
		if v.Value() {
			return []byte("true")
		}
		return []byte("false")
	case raw.NullObj:
		return []byte("null")
	case raw.StringObj:
		return escapeLiteralString(v.Value())
	case *raw.ArrayObj:
		var b bytes.Buffer
		b.WriteByte('[')
		for i, it := range v.Items {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.Write(serializePrimitive(it))
		}
		b.WriteByte(']')
		return b.Bytes()
	case *raw.DictObj:
		var b bytes.Buffer
		b.WriteString("<<")
		keys := make([]string, 0, len(v.KV))
		for k := range v.KV {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString("/" + k + " ")
			b.Write(serializePrimitive(v.KV[k]))
		}
		b.WriteString(">>")
		return b.Bytes()
	case *raw.StreamObj:
		var b bytes.Buffer
		b.Write(serializePrimitive(v.Dict))
		b.WriteString("stream\n")
		b.Write(v.Data)
		b.WriteString("\nendstream")
		return b.Bytes()
	case raw.RefObj:
		return []byte(v.Ref().String())
	default:
		return []byte("null")
	}
}
