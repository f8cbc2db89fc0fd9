package dispatch

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/docdesk/internal/errs"
	"github.com/iliyamo/docdesk/internal/validation"
)

type shapeAction interface{ isShape() }

type addShape struct {
	Name string `json:"name" validate:"required"`
}

type removeShape struct {
	ID validation.Int `json:"shape_id" validate:"required"`
}

type listShapes struct{}

func (*addShape) isShape()    {}
func (*removeShape) isShape() {}
func (*listShapes) isShape()  {}

var shapes = NewResource[shapeAction]("shape",
	Variant[shapeAction]{Action: "add_shape", New: func() shapeAction { return &addShape{} }},
	Variant[shapeAction]{Action: "remove_shape", New: func() shapeAction { return &removeShape{} }},
	Variant[shapeAction]{Action: "list_shapes", New: func() shapeAction { return &listShapes{} }},
)

func TestDecodeSelectsExactlyOneVariant(t *testing.T) {
	testCases := []struct {
		body string
		want shapeAction
	}{
		{body: `{"action":"add_shape","name":"circle"}`, want: &addShape{Name: "circle"}},
		{body: `{"action":"remove_shape","shape_id":"4"}`, want: &removeShape{ID: 4}},
		{body: `{"action":"list_shapes","ignored":[1,2]}`, want: &listShapes{}},
	}
	for _, tc := range testCases {
		t.Run(tc.body, func(t *testing.T) {
			_, got, err := shapes.Decode([]byte(tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeFailures(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		wantAction string
		wantMsg    string
	}{
		{name: "unknown action", body: `{"action":"paint"}`, wantMsg: `"action" must be one of [add_shape, remove_shape, list_shapes]`},
		{name: "field missing", body: `{"action":"add_shape"}`, wantAction: "add_shape", wantMsg: `"name" is required`},
		{name: "field type", body: `{"action":"remove_shape","shape_id":true}`, wantAction: "remove_shape", wantMsg: `"shape_id" must be a number`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			action, got, err := shapes.Decode([]byte(tc.body))
			assert.Nil(t, got)
			assert.Equal(t, tc.wantAction, action)
			var e *errs.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, http.StatusBadRequest, e.Status)
			assert.Equal(t, tc.wantMsg, e.Message)
		})
	}
}

func TestNewResourceRejectsDuplicates(t *testing.T) {
	assert.Panics(t, func() {
		NewResource[shapeAction]("dup",
			Variant[shapeAction]{Action: "a", New: func() shapeAction { return &listShapes{} }},
			Variant[shapeAction]{Action: "a", New: func() shapeAction { return &listShapes{} }},
		)
	})
	assert.Equal(t, []string{"add_shape", "remove_shape", "list_shapes"}, shapes.Actions())
	assert.Equal(t, "shape", shapes.Name())
}
