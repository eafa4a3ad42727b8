package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muthuvelan/orderdeskbackend/store"
)

// The /data endpoints expose the raw table store over HTTP with the
// {success, message, data} envelope the original admin tooling expects.

type tableBody struct {
	Table string    `json:"table" binding:"required"`
	Where store.Row `json:"where"`
	Data  store.Row `json:"data"`
}

// POST /admin/data/create-table
func (a *App) CreateTable() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body tableBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Table name required"})
			return
		}
		if err := a.Store.CreateTable(c.Request.Context(), body.Table); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": fmt.Sprintf("Table %s created", body.Table)})
	}
}

// POST /admin/data/insert
func (a *App) InsertData() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body tableBody
		if err := c.ShouldBindJSON(&body); err != nil || len(body.Data) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Table and data required"})
			return
		}
		if err := a.Store.InsertRow(c.Request.Context(), body.Table, body.Data); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Data inserted"})
	}
}

// GET /admin/data/read?table=orders
func (a *App) ReadData() gin.HandlerFunc {
	return func(c *gin.Context) {
		table := c.Query("table")
		if table == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Table parameter required"})
			return
		}
		rows, err := a.Store.ReadTable(c.Request.Context(), table)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
	}
}

// PUT /admin/data/update
func (a *App) UpdateData() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body tableBody
		if err := c.ShouldBindJSON(&body); err != nil || len(body.Where) == 0 || len(body.Data) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid parameters or table not found"})
			return
		}
		n, err := a.Store.UpdateRows(c.Request.Context(), body.Table, body.Where, body.Data)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": fmt.Sprintf("%d records updated", n)})
	}
}

// DELETE /admin/data/delete
func (a *App) DeleteData() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body tableBody
		if err := c.ShouldBindJSON(&body); err != nil || len(body.Where) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid parameters or table not found"})
			return
		}
		n, err := a.Store.DeleteRows(c.Request.Context(), body.Table, body.Where)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": fmt.Sprintf("%d records deleted", n)})
	}
}
