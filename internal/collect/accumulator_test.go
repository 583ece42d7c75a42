package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulator_InsertionOrder(t *testing.T) {
	acc := New()
	acc.AddBean("com.example.B")
	acc.AddBean("com.example.A")
	acc.AddBean("com.example.B") // duplicate, keeps first position
	acc.AddPackage("com.example.deep.pkg")
	acc.AddPackage("com.example")

	assert.Equal(t, []string{"com.example.B", "com.example.A"}, acc.Beans())
	assert.Equal(t, []string{"com.example.deep.pkg", "com.example"}, acc.Packages())
}

func TestAccumulator_BeanDominatesClass(t *testing.T) {
	acc := New()

	// class first, bean later: promoted
	acc.AddClass("com.example.Foo")
	acc.AddBean("com.example.Foo")
	assert.Equal(t, []string{"com.example.Foo"}, acc.Beans())
	assert.Empty(t, acc.Classes())

	// bean first, class later: class add is a no-op
	acc.AddBean("com.example.Bar")
	acc.AddClass("com.example.Bar")
	assert.Equal(t, []string{"com.example.Foo", "com.example.Bar"}, acc.Beans())
	assert.Empty(t, acc.Classes())
}

func TestAccumulator_Empty(t *testing.T) {
	acc := New()
	assert.True(t, acc.Empty())

	// packages alone do not make the pass emit anything
	acc.AddPackage("com.example")
	assert.True(t, acc.Empty())

	acc.AddArray("com.example.Foo[]")
	assert.False(t, acc.Empty())

	acc.Reset()
	assert.True(t, acc.Empty())
	assert.Empty(t, acc.Packages())
}

func TestAccumulator_Merge(t *testing.T) {
	file1 := New()
	file1.AddPackage("com.example.a")
	file1.AddClass("com.example.Shared")
	file1.AddClass("com.example.OnlyClass")

	file2 := New()
	file2.AddPackage("com.example.b")
	file2.AddBean("com.example.Shared")

	pass := New()
	pass.Merge(file1)
	pass.Merge(file2)

	assert.Equal(t, []string{"com.example.a", "com.example.b"}, pass.Packages())
	assert.Equal(t, []string{"com.example.OnlyClass"}, pass.Classes())
	assert.Equal(t, []string{"com.example.Shared"}, pass.Beans())
}

func TestAccumulator_IgnoresEmptyNames(t *testing.T) {
	acc := New()
	acc.AddPackage("")
	acc.AddBean("")
	acc.AddClass("")
	acc.AddArray("")
	assert.True(t, acc.Empty())
	assert.Empty(t, acc.Packages())
}
