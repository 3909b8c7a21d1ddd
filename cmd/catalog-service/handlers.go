package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MikeMC777/storefront/internal/catalog"
	"github.com/MikeMC777/storefront/internal/product"
)

const minSearchLen = 3

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = atoiDefault(c.Query("limit"), 20)
	offset = atoiDefault(c.Query("offset"), 0)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func errJSON(c *gin.Context, code int, msg string) {
	c.JSON(code, product.HTTPError{Error: msg})
}

// runListing loads the catalog, applies q and paginates the result.
func runListing(c *gin.Context, repo product.Repository, cache *queryCache, q catalog.Query) {
	ctx := c.Request.Context()
	limit, offset := pagination(c)

	key := ""
	if cache != nil {
		key = cache.key(ctx, c.FullPath(), c.Request.URL.Query().Encode())
		if res, ok := cache.get(ctx, key); ok {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, res)
			return
		}
	}

	all, err := repo.List(ctx)
	if err != nil {
		errJSON(c, http.StatusInternalServerError, "db error")
		return
	}
	matched := catalog.Run(all, q)

	page := []product.Product{}
	if offset < len(matched) {
		page = matched[offset:min(offset+limit, len(matched))]
	}
	res := product.ListResponse{
		Q:      q.Term,
		SortBy: string(q.Sort),
		Limit:  limit,
		Offset: offset,
		Total:  len(matched),
		Items:  page,
	}
	cache.put(ctx, key, res)
	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, res)
}

// listProductsHandler godoc
// @Summary  List products
// @Tags     products
// @Produce  json
// @Param    category    query string false "categories, comma separated"
// @Param    brand       query string false "brands, comma separated"
// @Param    priceRange  query string false "price bands such as 0-200,1000+"
// @Param    rating      query number false "minimum rating"
// @Param    inStock     query bool   false "only products in stock"
// @Param    featured    query bool   false "featured flag"
// @Param    sortBy      query string false "price-lowtohigh | price-hightolow | title-atoz | title-ztoa"
// @Param    limit       query int    false "page size (max 100)"
// @Param    offset      query int    false "offset"
// @Success  200 {object} product.ListResponse
// @Router   /products [get]
func listProductsHandler(repo product.Repository, cache *queryCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		runListing(c, repo, cache, catalog.Query{
			Criteria: catalog.ParseCriteria(c.Request.URL.Query()),
			Sort:     catalog.ParseSort(c.Query("sortBy")),
		})
	}
}

// searchHandler godoc
// @Summary  Search products
// @Tags     products
// @Produce  json
// @Param    q       query string true  "search term (at least 3 characters)"
// @Param    sortBy  query string false "sort order"
// @Success  200 {object} product.ListResponse
// @Failure  400 {object} product.HTTPError
// @Router   /products/search [get]
func searchHandler(repo product.Repository, cache *queryCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		term := strings.TrimSpace(c.Query("q"))
		if len([]rune(term)) < minSearchLen {
			errJSON(c, http.StatusBadRequest, "q must have at least 3 characters")
			return
		}
		runListing(c, repo, cache, catalog.Query{
			Term:     term,
			Criteria: catalog.ParseCriteria(c.Request.URL.Query()),
			Sort:     catalog.ParseSort(c.Query("sortBy")),
		})
	}
}

// priceBandsHandler lists the filter bands offered by the storefront.
func priceBandsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"filter": catalog.DefaultBands,
			"search": catalog.SearchBands,
			"sort":   catalog.SortOptions,
		})
	}
}

// getProductHandler godoc
// @Summary  Get product
// @Tags     products
// @Produce  json
// @Param    id  path string true "product id"
// @Success  200 {object} product.Product
// @Failure  404 {object} product.HTTPError
// @Router   /products/{id} [get]
func getProductHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, product.ErrNotFound) {
			errJSON(c, http.StatusNotFound, "not found")
			return
		}
		if err != nil {
			errJSON(c, http.StatusInternalServerError, "db error")
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// createProductHandler godoc
// @Summary  Create product
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    body body product.CreateProductRequest true "product"
// @Success  201 {object} product.Product
// @Failure  400 {object} product.HTTPError
// @Security BasicAuth
// @Router   /products [post]
func createProductHandler(repo product.Repository, cache *queryCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in product.CreateProductRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			errJSON(c, http.StatusBadRequest, "invalid json")
			return
		}
		p := in.Product()
		p.ID = uuid.NewString()
		if err := p.Validate(); err != nil {
			errJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		if err := repo.Create(c.Request.Context(), &p); err != nil {
			errJSON(c, http.StatusInternalServerError, "db error")
			return
		}
		cache.invalidate(c.Request.Context())
		c.JSON(http.StatusCreated, p)
	}
}

// updateProductHandler godoc
// @Summary  Update product (partial)
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    id   path string true "product id"
// @Param    body body product.UpdateProductRequest true "fields to change"
// @Success  200 {object} product.Product
// @Failure  400 {object} product.HTTPError
// @Failure  404 {object} product.HTTPError
// @Security BasicAuth
// @Router   /products/{id} [put]
func updateProductHandler(repo product.Repository, cache *queryCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in product.UpdateProductRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			errJSON(c, http.StatusBadRequest, "invalid json")
			return
		}
		ctx := c.Request.Context()
		p, err := repo.GetByID(ctx, c.Param("id"))
		if errors.Is(err, product.ErrNotFound) {
			errJSON(c, http.StatusNotFound, "not found")
			return
		}
		if err != nil {
			errJSON(c, http.StatusInternalServerError, "db error")
			return
		}
		in.Apply(p)
		if err := p.Validate(); err != nil {
			errJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		if err := repo.Update(ctx, p); err != nil {
			if errors.Is(err, product.ErrNotFound) {
				errJSON(c, http.StatusNotFound, "not found")
				return
			}
			errJSON(c, http.StatusInternalServerError, "db error")
			return
		}
		cache.invalidate(ctx)
		c.JSON(http.StatusOK, p)
	}
}

// deleteProductHandler godoc
// @Summary  Delete product
// @Tags     products
// @Param    id path string true "product id"
// @Success  204
// @Failure  404 {object} product.HTTPError
// @Security BasicAuth
// @Router   /products/{id} [delete]
func deleteProductHandler(repo product.Repository, cache *queryCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			errJSON(c, http.StatusInternalServerError, "db error")
			return
		}
		if !ok {
			errJSON(c, http.StatusNotFound, "not found")
			return
		}
		cache.invalidate(c.Request.Context())
		c.Status(http.StatusNoContent)
	}
}

// importProductsHandler godoc
// @Summary  Bulk import products from CSV
// @Tags     products
// @Accept   text/csv
// @Produce  json
// @Success  200 {object} map[string]int
// @Failure  400 {object} product.HTTPError
// @Security BasicAuth
// @Router   /products/import [post]
func importProductsHandler(repo product.Repository, cache *queryCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ps, err := product.DecodeCSV(c.Request.Body)
		if err != nil {
			errJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		ctx := c.Request.Context()
		for i := range ps {
			if ps[i].ID == "" {
				ps[i].ID = uuid.NewString()
			}
			if err := repo.Create(ctx, &ps[i]); err != nil {
				errJSON(c, http.StatusInternalServerError, "db error")
				return
			}
		}
		cache.invalidate(ctx)
		c.JSON(http.StatusOK, gin.H{"imported": len(ps)})
	}
}
