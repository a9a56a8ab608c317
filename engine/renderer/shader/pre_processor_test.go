package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnnotation(t *testing.T) {
	a, err := parseAnnotation("  //@oxy:include lights", 3)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, Annotation{Type: AnnotationTypeInclude, Arg: "lights", Line: 3}, *a)

	a, err = parseAnnotation("uniform vec3 color; // plain comment", 1)
	assert.NoError(t, err)
	assert.Nil(t, a)

	a, err = parseAnnotation(`vec3 x = vec3(1); // "@oxy:include" inside code`, 1)
	assert.NoError(t, err)
	assert.Nil(t, a)

	_, err = parseAnnotation("//@oxy:", 4)
	assert.ErrorContains(t, err, "line 4")

	_, err = parseAnnotation("//@oxy:define", 5)
	assert.ErrorContains(t, err, "exactly one argument")

	_, err = parseAnnotation("//@oxy:group 0 0 uniform camera", 6)
	assert.ErrorContains(t, err, "unknown @oxy annotation type")
}

func TestPreProcessor_Process(t *testing.T) {
	pp := NewPreProcessor(
		WithInclude("lights", "struct DirLight { vec3 direction; vec3 color; };"),
		WithDefine("MAX_DIR_LIGHTS", 4),
	)

	out, err := pp.Process("#version 410 core\n//@oxy:define MAX_DIR_LIGHTS\n//@oxy:include lights\nvoid main() {}")
	require.NoError(t, err)
	assert.Equal(t, "#version 410 core\n#define MAX_DIR_LIGHTS 4\nstruct DirLight { vec3 direction; vec3 color; };\nvoid main() {}", out)
	assert.Len(t, pp.Annotations(), 2)

	_, err = pp.Process("//@oxy:include materials")
	assert.ErrorContains(t, err, `unknown @oxy:include argument "materials"`)
}
