package controllers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/muthuvelan/orderdeskbackend/accounts"
	"github.com/muthuvelan/orderdeskbackend/apperr"
	"github.com/muthuvelan/orderdeskbackend/catalog"
	"github.com/muthuvelan/orderdeskbackend/orders"
	"github.com/muthuvelan/orderdeskbackend/store"
)

type App struct {
	Store    store.Store
	Orders   *orders.Repo
	Catalog  *catalog.Repo
	Accounts *accounts.Repo

	// Serializes lifecycle mutations: load, apply, persist is one unit and
	// no two operations on the document interleave.
	mu sync.Mutex
}

func NewApp(s store.Store) *App {
	return &App{
		Store:    s,
		Orders:   orders.NewRepo(s),
		Catalog:  catalog.NewRepo(s),
		Accounts: accounts.NewRepo(s),
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrOrderNotFound),
		errors.Is(err, apperr.ErrProductNotFound),
		errors.Is(err, apperr.ErrTableNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
