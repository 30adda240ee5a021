package guard_test

import (
	"errors"
	"testing"

	"foodorder/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCartLineNotConstructed = errors.New("cartLine must be created via newCartLine")

type cartLine struct {
	menuItemID string
	quantity   int
	guard      guard.ConstructorGuard
}

func newCartLine(menuItemID string, quantity int) (cartLine, error) {
	if quantity < 1 {
		return cartLine{}, errors.New("quantity must be positive")
	}
	return cartLine{menuItemID: menuItemID, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
}

func (l cartLine) Validate() error {
	return l.guard.Validate(errCartLineNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("unused")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("entity not constructed")

		err := g.Validate(expected)

		assert.Equal(t, expected, err)
	})

	t.Run("zero value with nil error falls back to default", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_Embedded(t *testing.T) {
	t.Run("value built by constructor validates", func(t *testing.T) {
		// Given
		line, err := newCartLine("menu-1", 2)
		require.NoError(t, err)

		// Then
		require.NoError(t, line.Validate())
	})

	t.Run("literal zero value is rejected", func(t *testing.T) {
		// Given
		line := cartLine{menuItemID: "menu-1", quantity: 2}

		// Then
		require.ErrorIs(t, line.Validate(), errCartLineNotConstructed)
	})

	t.Run("copies keep the constructed flag", func(t *testing.T) {
		line, err := newCartLine("menu-1", 1)
		require.NoError(t, err)

		cp := line

		require.NoError(t, cp.Validate())
	})
}
