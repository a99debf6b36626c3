package grpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestFieldLookups(t *testing.T) {
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":      structpb.NewStringValue("i1"),
		"cost":    structpb.NewNumberValue(12.5),
		"isAdmin": structpb.NewBoolValue(true),
		"isLogin": structpb.NewStringValue("1"),
		"tags":    structpb.NewListValue(&structpb.ListValue{}),
		"nothing": structpb.NewNullValue(),
	}}

	assert.Equal(t, "i1", stringField(req, "id"))
	assert.Equal(t, "12.5", stringField(req, "cost"))
	assert.Equal(t, "", stringField(req, "tags"))
	assert.Equal(t, "", stringField(req, "nothing"))
	assert.Equal(t, "", stringField(req, "missing"))
	assert.Equal(t, "", stringField(nil, "id"))

	assert.True(t, boolField(req, "isAdmin"))
	assert.True(t, boolField(req, "isLogin"))
	assert.False(t, boolField(req, "id"))
	assert.False(t, boolField(req, "missing"))
}

func TestFormFromStruct(t *testing.T) {
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"name":     structpb.NewStringValue("Drill"),
		"existing": structpb.NewNumberValue(3),
		"tags":     structpb.NewListValue(&structpb.ListValue{}),
	}}

	form := formFromStruct(req)
	assert.Equal(t, "Drill", form.Get("name"))
	assert.Equal(t, "3", form.Get("existing"))
	assert.NotContains(t, form, "tags")
}
