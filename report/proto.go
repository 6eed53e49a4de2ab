// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package report

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// wire schema, compatible with blaze_deps.Dependencies of Bazel's
// deps.proto, extended with used classes and used resources.
//
//	message UsedClass {
//	  optional string fully_qualified_name = 1;
//	  optional string internal_path = 2;
//	  optional bytes hash = 3;
//	}
//	message Dependency {
//	  enum Kind { EXPLICIT = 0; IMPLICIT = 1; UNUSED = 2; INCOMPLETE = 3; }
//	  required string path = 1;
//	  required Kind kind = 2;
//	  repeated UsedClass used_class = 4;
//	}
//	message Dependencies {
//	  repeated Dependency dependency = 1;
//	  optional string rule_label = 2;
//	  optional bool success = 3;
//	  repeated string used_resource = 6;
//	}
const protoPackage = "blaze_deps"

var (
	usedClassDesc    protoreflect.MessageDescriptor
	dependencyDesc   protoreflect.MessageDescriptor
	dependenciesDesc protoreflect.MessageDescriptor
)

func init() {
	fd, err := protodesc.NewFile(fileDescriptorProto(), new(protoregistry.Files))
	if err != nil {
		panic(fmt.Sprintf("bad deps.proto descriptor: %v", err))
	}
	msgs := fd.Messages()
	usedClassDesc = msgs.ByName("UsedClass")
	dependencyDesc = msgs.ByName("Dependency")
	dependenciesDesc = msgs.ByName("Dependencies")
}

func field(name string, num int32, label descriptorpb.FieldDescriptorProto_Label, typ descriptorpb.FieldDescriptorProto_Type, typeName string) *descriptorpb.FieldDescriptorProto {
	f := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(num),
		Label:  label.Enum(),
		Type:   typ.Enum(),
	}
	if typeName != "" {
		f.TypeName = proto.String("." + protoPackage + "." + typeName)
	}
	return f
}

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	const (
		optional = descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
		required = descriptorpb.FieldDescriptorProto_LABEL_REQUIRED
		repeated = descriptorpb.FieldDescriptorProto_LABEL_REPEATED

		typString  = descriptorpb.FieldDescriptorProto_TYPE_STRING
		typBytes   = descriptorpb.FieldDescriptorProto_TYPE_BYTES
		typBool    = descriptorpb.FieldDescriptorProto_TYPE_BOOL
		typEnum    = descriptorpb.FieldDescriptorProto_TYPE_ENUM
		typMessage = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
	)
	var kinds []*descriptorpb.EnumValueDescriptorProto
	for _, k := range []Kind{Explicit, Implicit, Unused, Incomplete} {
		kinds = append(kinds, &descriptorpb.EnumValueDescriptorProto{
			Name:   proto.String(k.String()),
			Number: proto.Int32(int32(k)),
		})
	}
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("jdeps/deps.proto"),
		Package: proto.String(protoPackage),
		Syntax:  proto.String("proto2"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("UsedClass"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("fully_qualified_name", 1, optional, typString, ""),
					field("internal_path", 2, optional, typString, ""),
					field("hash", 3, optional, typBytes, ""),
				},
			},
			{
				Name: proto.String("Dependency"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("path", 1, required, typString, ""),
					field("kind", 2, required, typEnum, "Dependency.Kind"),
					field("used_class", 4, repeated, typMessage, "UsedClass"),
				},
				EnumType: []*descriptorpb.EnumDescriptorProto{
					{
						Name:  proto.String("Kind"),
						Value: kinds,
					},
				},
			},
			{
				Name: proto.String("Dependencies"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("dependency", 1, repeated, typMessage, "Dependency"),
					field("rule_label", 2, optional, typString, ""),
					field("success", 3, optional, typBool, ""),
					field("used_resource", 6, repeated, typString, ""),
				},
			},
		},
	}
}

func fieldOf(md protoreflect.MessageDescriptor, name protoreflect.Name) protoreflect.FieldDescriptor {
	return md.Fields().ByName(name)
}

func (d *Dependencies) toMessage() *dynamicpb.Message {
	m := dynamicpb.NewMessage(dependenciesDesc)
	if d.RuleLabel != "" {
		m.Set(fieldOf(dependenciesDesc, "rule_label"), protoreflect.ValueOfString(d.RuleLabel))
	}
	m.Set(fieldOf(dependenciesDesc, "success"), protoreflect.ValueOfBool(d.Success))
	if len(d.Dependencies) > 0 {
		deps := m.Mutable(fieldOf(dependenciesDesc, "dependency")).List()
		for _, dep := range d.Dependencies {
			deps.Append(protoreflect.ValueOfMessage(dep.toMessage()))
		}
	}
	if len(d.UsedResources) > 0 {
		res := m.Mutable(fieldOf(dependenciesDesc, "used_resource")).List()
		for _, r := range d.UsedResources {
			res.Append(protoreflect.ValueOfString(r))
		}
	}
	return m
}

func (d Dependency) toMessage() *dynamicpb.Message {
	m := dynamicpb.NewMessage(dependencyDesc)
	m.Set(fieldOf(dependencyDesc, "path"), protoreflect.ValueOfString(d.Path))
	m.Set(fieldOf(dependencyDesc, "kind"), protoreflect.ValueOfEnum(protoreflect.EnumNumber(d.Kind)))
	if len(d.UsedClasses) > 0 {
		classes := m.Mutable(fieldOf(dependencyDesc, "used_class")).List()
		for _, c := range d.UsedClasses {
			cm := dynamicpb.NewMessage(usedClassDesc)
			cm.Set(fieldOf(usedClassDesc, "fully_qualified_name"), protoreflect.ValueOfString(c.FullyQualifiedName))
			cm.Set(fieldOf(usedClassDesc, "internal_path"), protoreflect.ValueOfString(c.InternalPath))
			if len(c.Hash) > 0 {
				cm.Set(fieldOf(usedClassDesc, "hash"), protoreflect.ValueOfBytes(c.Hash))
			}
			classes.Append(protoreflect.ValueOfMessage(cm))
		}
	}
	return m
}

func fromMessage(m protoreflect.Message) *Dependencies {
	d := &Dependencies{
		RuleLabel: m.Get(fieldOf(dependenciesDesc, "rule_label")).String(),
		Success:   m.Get(fieldOf(dependenciesDesc, "success")).Bool(),
	}
	deps := m.Get(fieldOf(dependenciesDesc, "dependency")).List()
	for i := 0; i < deps.Len(); i++ {
		dm := deps.Get(i).Message()
		dep := Dependency{
			Path: dm.Get(fieldOf(dependencyDesc, "path")).String(),
			Kind: Kind(dm.Get(fieldOf(dependencyDesc, "kind")).Enum()),
		}
		classes := dm.Get(fieldOf(dependencyDesc, "used_class")).List()
		for j := 0; j < classes.Len(); j++ {
			cm := classes.Get(j).Message()
			dep.UsedClasses = append(dep.UsedClasses, UsedClass{
				FullyQualifiedName: cm.Get(fieldOf(usedClassDesc, "fully_qualified_name")).String(),
				InternalPath:       cm.Get(fieldOf(usedClassDesc, "internal_path")).String(),
				Hash:               cm.Get(fieldOf(usedClassDesc, "hash")).Bytes(),
			})
		}
		d.Dependencies = append(d.Dependencies, dep)
	}
	res := m.Get(fieldOf(dependenciesDesc, "used_resource")).List()
	for i := 0; i < res.Len(); i++ {
		d.UsedResources = append(d.UsedResources, res.Get(i).String())
	}
	return d
}
