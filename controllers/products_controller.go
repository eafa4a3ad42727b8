package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/muthuvelan/orderdeskbackend/dto"
	"github.com/muthuvelan/orderdeskbackend/models"
	"github.com/muthuvelan/orderdeskbackend/utils"
)

// GET /products
func (a *App) GetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		maxLimit, defaultLimit := utils.GetDefaultQueryLimits()
		page := utils.ParseIntDefault(c.Query("page"), 1)
		limit := utils.ParseIntDefault(c.Query("limit"), defaultLimit)
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > maxLimit {
			limit = defaultLimit
		}

		includeDisabled := false
		if b, err := utils.ParseBoolQuery(c.Query("includeDisabled")); err == nil && b != nil {
			includeDisabled = *b
		}

		products, err := a.Catalog.List(ctx, strings.TrimSpace(c.Query("category")), includeDisabled)
		if err != nil {
			respondError(c, err)
			return
		}

		total := len(products)
		start := (page - 1) * limit
		if start > total {
			start = total
		}
		end := start + limit
		if end > total {
			end = total
		}

		c.JSON(http.StatusOK, gin.H{
			"items": products[start:end],
			"page":  page,
			"limit": limit,
			"total": total,
		})
	}
}

// POST /admin/products
//
// multipart/form-data:
//   - data: CreateProductDTO as JSON
//   - image: optional catalog image, uploaded to GCS
func (a *App) AddProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		dataStr := c.PostForm("data")
		if dataStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing data"})
			return
		}
		var body dto.CreateProductDTO
		if err := json.Unmarshal([]byte(dataStr), &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data json", "details": err.Error()})
			return
		}
		if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.UnitOfMeasure) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and unitOfMeasure are required"})
			return
		}

		p := models.Product{
			Id:            uuid.NewString(),
			Name:          strings.TrimSpace(body.Name),
			Slug:          utils.GenerateSlug(body.Name),
			Description:   body.Description,
			UnitOfMeasure: body.UnitOfMeasure,
			Category:      body.Category,
			UnitPrice:     body.UnitPrice,
		}

		if fh, err := c.FormFile("image"); err == nil {
			if fh.Size > 5*1024*1024 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "image too large (max 5MB)"})
				return
			}
			gcsClient, bucket, err := utils.NewGCSClient(ctx)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to init gcs client"})
				return
			}
			uploadCtx, cancel := context.WithTimeout(ctx, 50*time.Second)
			defer cancel()
			url, err := utils.UploadProductImageToGCS(uploadCtx, gcsClient, bucket, p.Slug, fh)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "image upload failed", "details": err.Error()})
				return
			}
			p.ImageUrl = url
		}

		if err := a.Catalog.Insert(ctx, &p); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// PATCH /admin/products/:id
func (a *App) UpdateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.UpdateProductDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		p, err := a.Catalog.Get(ctx, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		if body.Name != nil {
			p.Name = strings.TrimSpace(*body.Name)
			p.Slug = utils.GenerateSlug(p.Name)
		}
		if body.Description != nil {
			p.Description = *body.Description
		}
		if body.UnitOfMeasure != nil {
			p.UnitOfMeasure = *body.UnitOfMeasure
		}
		if body.Category != nil {
			p.Category = *body.Category
		}
		if body.UnitPrice != nil {
			p.UnitPrice = body.UnitPrice
		}
		if body.IsDisabled != nil {
			p.IsDisabled = *body.IsDisabled
		}

		if err := a.Catalog.Update(ctx, p); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
