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

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Fully qualified names of the messages in the truthtab schema
const (
	ConfigMessage     = "truthtab.Config"
	TruthTableMessage = "truthtab.TruthTable"
	RowMessage        = "truthtab.TruthTable.Row"
)

func optionalField(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(jsonName(name)),
		Number:   proto.Int32(number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     typ.Enum(),
	}
}

func repeatedField(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	fd := optionalField(name, number, typ)
	fd.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return fd
}

// jsonName converts snake_case to lowerCamelCase the way protoc does
func jsonName(name string) string {
	out := make([]byte, 0, len(name))
	upper := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' {
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out = append(out, c)
	}
	return string(out)
}

// schemaFile describes truthtab.proto:
//
//	syntax = "proto2";
//	package truthtab;
//
//	message Config {
//	  optional string prompt = 1;
//	  optional string history_file = 2;
//	  optional string format = 3;
//	  optional uint32 max_variables = 4;
//	  optional string self_reference = 5;
//	  optional bool no_color = 6;
//	  optional string listen_address = 7;
//	}
//
//	message TruthTable {
//	  message Row {
//	    repeated bool values = 1;
//	    optional bool output = 2;
//	  }
//	  optional string statement = 1;
//	  repeated string header = 2;
//	  repeated Row rows = 3;
//	}
func schemaFile() *descriptorpb.FileDescriptorProto {
	str := descriptorpb.FieldDescriptorProto_TYPE_STRING
	boolean := descriptorpb.FieldDescriptorProto_TYPE_BOOL

	rows := repeatedField("rows", 3, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE)
	rows.TypeName = proto.String("." + RowMessage)

	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("truthtab/truthtab.proto"),
		Package: proto.String("truthtab"),
		Syntax:  proto.String("proto2"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Config"),
				Field: []*descriptorpb.FieldDescriptorProto{
					optionalField("prompt", 1, str),
					optionalField("history_file", 2, str),
					optionalField("format", 3, str),
					optionalField("max_variables", 4, descriptorpb.FieldDescriptorProto_TYPE_UINT32),
					optionalField("self_reference", 5, str),
					optionalField("no_color", 6, boolean),
					optionalField("listen_address", 7, str),
				},
			},
			{
				Name: proto.String("TruthTable"),
				Field: []*descriptorpb.FieldDescriptorProto{
					optionalField("statement", 1, str),
					repeatedField("header", 2, str),
					rows,
				},
				NestedType: []*descriptorpb.DescriptorProto{
					{
						Name: proto.String("Row"),
						Field: []*descriptorpb.FieldDescriptorProto{
							repeatedField("values", 1, boolean),
							optionalField("output", 2, boolean),
						},
					},
				},
			},
		},
	}
}

// NewSchemaRegistry builds a registry holding the truthtab schema
func NewSchemaRegistry() (*protoregistry.Files, error) {
	fds := &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{schemaFile()},
	}
	files, err := protodesc.NewFiles(fds)
	if err != nil {
		return nil, fmt.Errorf("failed to build truthtab schema: %w", err)
	}
	return files, nil
}
