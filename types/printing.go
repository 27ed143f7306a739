// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

import (
	"strconv"
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} {
		return &typePrinter{idNames: make(map[int]string, 16)}
	},
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	for k := range p.idNames {
		delete(p.idNames, k)
	}
	p.sb.Reset()
	printerPool.Put(p)
}

// TypeString returns a string representation of a Type, following Link
// chains and naming unbound variables '_0, '_1, ... by their allocation
// id. A generic variable is named 'a, 'b, ... by the number of distinct
// variables, generic or unbound, already named in the same call.
func TypeString(t Type) string {
	p := newTypePrinter()
	typeString(p, false, t)
	s := p.sb.String()
	p.Release()
	return s
}

type typePrinter struct {
	idNames map[int]string
	sb      strings.Builder
}

var genericNames [128]string

func init() {
	for i := range genericNames {
		if i < 26 {
			genericNames[i] = "'" + string(byte('a'+i))
		} else {
			genericNames[i] = "'" + string(byte('a'+i%26)) + strconv.Itoa(i/26)
		}
	}
}

func getGenericName(i int) string {
	if i >= 0 && i < len(genericNames) {
		return genericNames[i]
	}
	return "'" + string(byte('a'+i%26)) + strconv.Itoa(i/26)
}

func (p *typePrinter) nextGenericName() string { return getGenericName(len(p.idNames)) }

func typeString(p *typePrinter, simple bool, t Type) {
	switch t := t.(type) {
	case *Var:
		switch {
		case t.IsLinkVar():
			typeString(p, simple, t.Link())
		default:
			if name, ok := p.idNames[t.Id()]; ok {
				p.sb.WriteString(name)
				return
			}
			name := "'_" + strconv.Itoa(t.Id())
			p.idNames[t.Id()] = name
			p.sb.WriteString(name)
		}

	case *GenericVar:
		if name, ok := p.idNames[t.Id()]; ok {
			p.sb.WriteString(name)
			return
		}
		name := p.nextGenericName()
		p.idNames[t.Id()] = name
		p.sb.WriteString(name)

	case *App:
		p.sb.WriteString(t.Const.String())
		if len(t.Args) == 0 {
			return
		}
		p.sb.WriteByte('(')
		for i, arg := range t.Args {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, false, arg)
		}
		p.sb.WriteByte(')')

	case *Tuple:
		p.sb.WriteByte('(')
		for i, elem := range t.Elems {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, false, elem)
		}
		p.sb.WriteByte(')')

	case *Arrow:
		if simple {
			p.sb.WriteByte('(')
		}
		typeString(p, true, t.Param)
		p.sb.WriteString(" -> ")
		typeString(p, false, t.Result)
		if simple {
			p.sb.WriteByte(')')
		}

	case *Borrow:
		if t.Mode == Write {
			p.sb.WriteString("&!")
		} else {
			p.sb.WriteByte('&')
		}
		typeString(p, true, t.Inner)
	}
}
