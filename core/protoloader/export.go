/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Truthtab Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package protoloader

import (
	"fmt"

	"github.com/google/truthtab/core/truthtable"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

func field(md protoreflect.MessageDescriptor, name string) (protoreflect.FieldDescriptor, error) {
	fd := md.Fields().ByName(protoreflect.Name(name))
	if fd == nil {
		return nil, fmt.Errorf("%s has no field %q", md.FullName(), name)
	}
	return fd, nil
}

// TableMessage converts t to a truthtab.TruthTable message
func (l *Loader) TableMessage(t *truthtable.Table) (*dynamicpb.Message, error) {
	msg, err := l.NewMessage(TruthTableMessage)
	if err != nil {
		return nil, err
	}
	md := msg.Descriptor()

	statementFd, err := field(md, "statement")
	if err != nil {
		return nil, err
	}
	headerFd, err := field(md, "header")
	if err != nil {
		return nil, err
	}
	rowsFd, err := field(md, "rows")
	if err != nil {
		return nil, err
	}
	valuesFd, err := field(rowsFd.Message(), "values")
	if err != nil {
		return nil, err
	}
	outputFd, err := field(rowsFd.Message(), "output")
	if err != nil {
		return nil, err
	}

	if t.Statement != "" {
		msg.Set(statementFd, protoreflect.ValueOfString(t.Statement))
	}

	header := msg.Mutable(headerFd).List()
	for _, name := range t.Header {
		header.Append(protoreflect.ValueOfString(name))
	}

	rows := msg.Mutable(rowsFd).List()
	for _, row := range t.Rows {
		rowMsg := rows.NewElement().Message()
		values := rowMsg.Mutable(valuesFd).List()
		for _, v := range row.Values {
			values.Append(protoreflect.ValueOfBool(v))
		}
		rowMsg.Set(outputFd, protoreflect.ValueOfBool(row.Output))
		rows.Append(protoreflect.ValueOfMessage(rowMsg))
	}

	return msg, nil
}

// MarshalTableText encodes t as multi-line textproto
func (l *Loader) MarshalTableText(t *truthtable.Table) ([]byte, error) {
	msg, err := l.TableMessage(t)
	if err != nil {
		return nil, err
	}
	return prototext.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(msg)
}

// MarshalTableJSON encodes t as indented JSON
func (l *Loader) MarshalTableJSON(t *truthtable.Table) ([]byte, error) {
	msg, err := l.TableMessage(t)
	if err != nil {
		return nil, err
	}
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(msg)
}
