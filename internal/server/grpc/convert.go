package grpc

import (
	"encoding/json"
	"net/url"
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// scalarString renders a string, number or bool Value as form text.
// Numbers keep their shortest decimal representation.
func scalarString(v *structpb.Value) (string, bool) {
	switch x := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return x.StringValue, true
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(x.NumberValue, 'f', -1, 64), true
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(x.BoolValue), true
	}
	return "", false
}

// formFromStruct flattens the scalar fields of req into form values.
func formFromStruct(req *structpb.Struct) url.Values {
	form := url.Values{}
	for k, v := range req.GetFields() {
		if s, ok := scalarString(v); ok {
			form.Set(k, s)
		}
	}
	return form
}

func stringField(req *structpb.Struct, key string) string {
	s, _ := scalarString(req.GetFields()[key])
	return s
}

// boolField accepts a bool or the strings "true"/"1".
func boolField(req *structpb.Struct, key string) bool {
	b, err := strconv.ParseBool(stringField(req, key))
	return err == nil && b
}

// toStruct converts any JSON-encodable value into a Struct.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	return out, nil
}

func errorStruct(err error) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"error": structpb.NewStringValue(err.Error()),
	}}
}
