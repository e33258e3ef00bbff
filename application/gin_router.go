package application

import (
	"github.com/gin-gonic/gin"
)

// Router registers routes on an engine
type Router interface {
	Register(engine *gin.Engine, app *App) error
}

// RouterFunc adapts a function to Router
type RouterFunc func(engine *gin.Engine, app *App) error

func (f RouterFunc) Register(engine *gin.Engine, app *App) error {
	return f(engine, app)
}

// RouterManager 统一注册入口，按添加顺序注册
type RouterManager struct {
	routers []Router
}

func NewRouterManager() *RouterManager {
	return &RouterManager{routers: make([]Router, 0)}
}

// Add appends r
func (m *RouterManager) Add(routers ...Router) *RouterManager {
	m.routers = append(m.routers, routers...)
	return m
}

// AddFunc appends fn
func (m *RouterManager) AddFunc(fn func(engine *gin.Engine, app *App) error) *RouterManager {
	m.routers = append(m.routers, RouterFunc(fn))
	return m
}

// Register runs in order and stops at the first error
func (m *RouterManager) Register(engine *gin.Engine, app *App) error {
	for _, router := range m.routers {
		if err := router.Register(engine, app); err != nil {
			return err
		}
	}
	return nil
}

// Len number of routers
func (m *RouterManager) Len() int {
	return len(m.routers)
}
