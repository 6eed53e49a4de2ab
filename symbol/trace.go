// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package symbol

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// EventKind is a kind of analyzer callback.
type EventKind int

const (
	// ResolvedCall is a resolved call expression or reference.
	ResolvedCall EventKind = iota
	// Declaration is an analyzed declaration.
	Declaration
)

func (k EventKind) String() string {
	switch k {
	case ResolvedCall:
		return "call"
	case Declaration:
		return "declaration"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is an analyzer callback recorded in a trace.
type Event struct {
	Kind   EventKind
	Symbol Symbol
}

// Trace is a recorded sequence of analyzer callbacks of one
// compilation unit.
type Trace struct {
	Events []Event
}

// trace file format.
//
//	{
//	  "classes": {"<id>": {"fq_name": ..., "origin": {...}, "supertypes": ["<type id>"...]}},
//	  "types": {"<id>": {"class": "<class id>", "args": [...]} or {"param": "T", "bounds": [...]}},
//	  "events": [{"call": <symbol>} or {"declaration": <symbol>}, ...]
//	}
type jsonTrace struct {
	Classes map[string]jsonClass `json:"classes"`
	Types   map[string]jsonType  `json:"types"`
	Events  []jsonEvent          `json:"events"`
}

type jsonOrigin struct {
	Kind    string `json:"kind"`
	Archive string `json:"archive"`
	Entry   string `json:"entry"`
}

type jsonClass struct {
	FQName     string     `json:"fq_name"`
	Origin     jsonOrigin `json:"origin"`
	Supertypes []string   `json:"supertypes"`
	Object     bool       `json:"object"`
}

type jsonType struct {
	Class  string   `json:"class"`
	Param  string   `json:"param"`
	Bounds []string `json:"bounds"`
	Args   []string `json:"args"`
}

type jsonEvent struct {
	Call        *jsonSymbol `json:"call"`
	Declaration *jsonSymbol `json:"declaration"`
}

type jsonSymbol struct {
	Class         string            `json:"class"`
	ObjectMember  *jsonObjectMember `json:"object_member"`
	BinaryMember  *jsonBinaryMember `json:"binary_member"`
	Function      *jsonFunction     `json:"function"`
	Parameter     *jsonTyped        `json:"parameter"`
	ObjectLiteral *jsonTyped        `json:"object_literal"`
	Property      *jsonProperty     `json:"property"`
	LocalVariable *jsonTyped        `json:"local_variable"`
}

type jsonObjectMember struct {
	Name   string `json:"name"`
	Object string `json:"object"`
}

type jsonBinaryMember struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

type jsonFunction struct {
	Name              string     `json:"name"`
	Origin            jsonOrigin `json:"origin"`
	Container         string     `json:"container"`
	ReturnType        string     `json:"return_type"`
	Params            []string   `json:"params"`
	ExtensionReceiver string     `json:"extension_receiver"`
	Annotations       []string   `json:"annotations"`
}

type jsonTyped struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type jsonProperty struct {
	Name             string     `json:"name"`
	Container        string     `json:"container"`
	Origin           jsonOrigin `json:"origin"`
	Type             string     `json:"type"`
	Java             bool       `json:"java"`
	Annotations      []string   `json:"annotations"`
	FieldAnnotations []string   `json:"field_annotations"`
}

// ErrUnknownID is returned when a trace refers to an undefined class or type.
var ErrUnknownID = errors.New("unknown id")

// DecodeTrace reads a trace in JSON format.
func DecodeTrace(r io.Reader) (*Trace, error) {
	var jt jsonTrace
	err := json.NewDecoder(r).Decode(&jt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse trace: %w", err)
	}
	d := &decoder{
		classes: make(map[string]*Class, len(jt.Classes)),
		types:   make(map[string]*Type, len(jt.Types)),
	}
	// allocate first so that classes and types can refer each other.
	for id := range jt.Classes {
		d.classes[id] = &Class{}
	}
	for id := range jt.Types {
		d.types[id] = &Type{}
	}
	for id, jc := range jt.Classes {
		c := d.classes[id]
		c.FQName = jc.FQName
		c.Object = jc.Object
		c.Origin, err = decodeOrigin(jc.Origin)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", id, err)
		}
		c.Supertypes, err = d.typeList(jc.Supertypes)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", id, err)
		}
	}
	for id, jty := range jt.Types {
		t := d.types[id]
		t.Param = jty.Param
		if jty.Class != "" {
			t.Class, err = d.class(jty.Class)
			if err != nil {
				return nil, fmt.Errorf("type %q: %w", id, err)
			}
		}
		t.Bounds, err = d.typeList(jty.Bounds)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", id, err)
		}
		t.Args, err = d.typeList(jty.Args)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", id, err)
		}
	}
	tr := &Trace{}
	for i, je := range jt.Events {
		var ev Event
		var js *jsonSymbol
		switch {
		case je.Call != nil && je.Declaration == nil:
			ev.Kind = ResolvedCall
			js = je.Call
		case je.Declaration != nil && je.Call == nil:
			ev.Kind = Declaration
			js = je.Declaration
		default:
			return nil, fmt.Errorf("event %d: want exactly one of call or declaration", i)
		}
		ev.Symbol, err = d.symbol(js)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		tr.Events = append(tr.Events, ev)
	}
	return tr, nil
}

type decoder struct {
	classes map[string]*Class
	types   map[string]*Type
}

func decodeOrigin(jo jsonOrigin) (Origin, error) {
	kind, err := ParseOriginKind(jo.Kind)
	if err != nil {
		return Origin{}, err
	}
	return Origin{Kind: kind, Archive: jo.Archive, Entry: jo.Entry}, nil
}

func (d *decoder) class(id string) (*Class, error) {
	if id == "" {
		return nil, nil
	}
	c, ok := d.classes[id]
	if !ok {
		return nil, fmt.Errorf("class %q: %w", id, ErrUnknownID)
	}
	return c, nil
}

func (d *decoder) typ(id string) (*Type, error) {
	if id == "" {
		return nil, nil
	}
	t, ok := d.types[id]
	if !ok {
		return nil, fmt.Errorf("type %q: %w", id, ErrUnknownID)
	}
	return t, nil
}

func (d *decoder) typeList(ids []string) ([]*Type, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ts := make([]*Type, 0, len(ids))
	for _, id := range ids {
		t, err := d.typ(id)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}

func (d *decoder) symbol(js *jsonSymbol) (Symbol, error) {
	var err error
	switch {
	case js.Class != "":
		return d.class(js.Class)

	case js.ObjectMember != nil:
		m := &ObjectMember{Name: js.ObjectMember.Name}
		m.Object, err = d.class(js.ObjectMember.Object)
		return m, err

	case js.BinaryMember != nil:
		m := &BinaryMember{Name: js.BinaryMember.Name}
		m.Owner, err = d.class(js.BinaryMember.Owner)
		return m, err

	case js.Function != nil:
		jf := js.Function
		f := &Function{Name: jf.Name}
		if f.Origin, err = decodeOrigin(jf.Origin); err != nil {
			return nil, err
		}
		if f.Container, err = d.class(jf.Container); err != nil {
			return nil, err
		}
		if f.ReturnType, err = d.typ(jf.ReturnType); err != nil {
			return nil, err
		}
		if f.Params, err = d.typeList(jf.Params); err != nil {
			return nil, err
		}
		if f.ExtensionReceiver, err = d.typ(jf.ExtensionReceiver); err != nil {
			return nil, err
		}
		f.Annotations, err = d.typeList(jf.Annotations)
		return f, err

	case js.Parameter != nil:
		p := &Parameter{Name: js.Parameter.Name}
		p.Type, err = d.typ(js.Parameter.Type)
		return p, err

	case js.ObjectLiteral != nil:
		o := &ObjectLiteral{}
		o.Type, err = d.typ(js.ObjectLiteral.Type)
		return o, err

	case js.Property != nil:
		jp := js.Property
		p := &Property{Name: jp.Name, Java: jp.Java}
		if p.Origin, err = decodeOrigin(jp.Origin); err != nil {
			return nil, err
		}
		if p.Container, err = d.class(jp.Container); err != nil {
			return nil, err
		}
		if p.Type, err = d.typ(jp.Type); err != nil {
			return nil, err
		}
		if p.Annotations, err = d.typeList(jp.Annotations); err != nil {
			return nil, err
		}
		p.FieldAnnotations, err = d.typeList(jp.FieldAnnotations)
		return p, err

	case js.LocalVariable != nil:
		v := &LocalVariable{Name: js.LocalVariable.Name}
		v.Type, err = d.typ(js.LocalVariable.Type)
		return v, err
	}
	return nil, errors.New("empty symbol")
}
