package gen

import "text/template"

var ringTemplate = template.Must(template.New("ring").Parse(`// Code generated by ringgen; DO NOT EDIT.

package {{.Package}}

import "github.com/momentics/hioload-ring/api"

{{if .Assert}}var _ api.Queue[{{.ElemType}}] = (*{{.TypeName}})(nil)

{{end}}// {{.CapConst}} is the fixed capacity of {{.TypeName}}.
const {{.CapConst}} = {{.Capacity}}

// {{.TypeName}} is a FIFO ring of at most {{.Capacity}} elements stored inline.
// The zero value is an empty ring. Not safe for concurrent use.
type {{.Decl}} struct {
	data [{{.CapConst}}]{{.ElemType}}
	head int
	tail int
	size int
}

// {{.Constructor}} returns an empty {{.TypeName}}.
func {{.Constructor}}{{if .TypeParams}}[{{.TypeParams}}]{{end}}() *{{.Receiver}} {
	return &{{.Receiver}}{}
}

// Enqueue appends item as the newest element; returns api.ErrFull if full.
func (b *{{.Receiver}}) Enqueue(item {{.ElemType}}) error {
	if b.size == len(b.data) {
		return api.ErrFull
	}
	b.data[b.tail] = item
	b.tail = (b.tail + 1) % len(b.data)
	b.size++
	return nil
}

// Dequeue removes and returns the oldest element; ok==false if empty.
func (b *{{.Receiver}}) Dequeue() (item {{.ElemType}}, ok bool) {
	if b.size == 0 {
		return item, false
	}
	var zero {{.ElemType}}
	item = b.data[b.head]
	b.data[b.head] = zero
	b.head = (b.head + 1) % len(b.data)
	b.size--
	return item, true
}

// Peek returns the oldest element without removing it.
func (b *{{.Receiver}}) Peek() (item {{.ElemType}}, ok bool) {
	if b.size == 0 {
		return item, false
	}
	return b.data[b.head], true
}

func (b *{{.Receiver}}) IsFull() bool { return b.size == len(b.data) }

func (b *{{.Receiver}}) IsEmpty() bool { return b.size == 0 }

func (b *{{.Receiver}}) Len() int { return b.size }

func (b *{{.Receiver}}) Cap() int { return len(b.data) }

// Clear drops every live element and rewinds the cursors to slot 0.
func (b *{{.Receiver}}) Clear() {
	var zero {{.ElemType}}
	for i, idx := 0, b.head; i < b.size; i++ {
		b.data[idx] = zero
		idx = (idx + 1) % len(b.data)
	}
	b.head, b.tail, b.size = 0, 0, 0
}
`))
