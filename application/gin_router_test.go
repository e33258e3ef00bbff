package application

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type orderRouter struct {
	name  string
	order *[]string
}

func (r orderRouter) Register(*gin.Engine, *App) error {
	*r.order = append(*r.order, r.name)
	return nil
}

func TestRouterManager_RegisterInOrder(t *testing.T) {
	var order []string
	m := NewRouterManager().
		Add(orderRouter{"a", &order}, orderRouter{"b", &order}).
		AddFunc(func(*gin.Engine, *App) error {
			order = append(order, "c")
			return nil
		})

	assert.Equal(t, 3, m.Len())
	assert.NoError(t, m.Register(gin.New(), nil))
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestRouterManager_StopsOnError(t *testing.T) {
	var order []string
	boom := errors.New("boom")
	m := NewRouterManager().
		AddFunc(func(*gin.Engine, *App) error { return boom }).
		Add(orderRouter{"after", &order})

	err := m.Register(gin.New(), nil)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, order)
}
