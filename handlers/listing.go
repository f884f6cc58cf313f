package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"stayfinder/middleware"
	"stayfinder/models"
	"stayfinder/services/listing"
	"stayfinder/services/user"
	"stayfinder/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ListingHandler struct {
	svc    listing.ListingService
	users  user.UserService
	logger *zap.Logger
}

func NewListingHandler(svc listing.ListingService, users user.UserService, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{svc: svc, users: users, logger: loggerOrNop(logger)}
}

// parseFilter reads the search query. Absent values leave the filter open.
func parseFilter(c *gin.Context) (models.ListingFilter, error) {
	f := models.ListingFilter{
		City:  strings.TrimSpace(c.Query("city")),
		Query: strings.TrimSpace(c.Query("q")),
	}
	var err error
	if v := c.Query("minPrice"); v != "" {
		if f.MinPrice, err = strconv.ParseFloat(v, 64); err != nil {
			return f, utils.InvalidInput("minPrice must be a number")
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if f.MaxPrice, err = strconv.ParseFloat(v, 64); err != nil {
			return f, utils.InvalidInput("maxPrice must be a number")
		}
	}
	if v := c.Query("guests"); v != "" {
		if f.Guests, err = strconv.Atoi(v); err != nil {
			return f, utils.InvalidInput("guests must be a whole number")
		}
	}
	return f, nil
}

func (h *ListingHandler) Search(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	listings, err := h.svc.SearchListings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, listings)
}

func (h *ListingHandler) Get(c *gin.Context) {
	l, err := h.svc.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, l)
}

func (h *ListingHandler) Create(c *gin.Context) {
	var in listing.ListingInput
	if !bindJSON(c, h.logger, &in) {
		return
	}
	owner, err := h.users.GetUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	l, err := h.svc.CreateListing(c.Request.Context(), owner, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusCreated, l)
}

func (h *ListingHandler) Update(c *gin.Context) {
	var in listing.ListingInput
	if !bindJSON(c, h.logger, &in) {
		return
	}
	l, err := h.svc.UpdateListing(c.Request.Context(), c.Param("id"), middleware.UserID(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, l)
}

func (h *ListingHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteListing(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondMessage(c, "Listing deleted successfully", gin.H{"id": id})
}

func (h *ListingHandler) ListMine(c *gin.Context) {
	listings, err := h.svc.ListByOwner(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, listings)
}

func (h *ListingHandler) AddReview(c *gin.Context) {
	var in listing.ReviewInput
	if !bindJSON(c, h.logger, &in) {
		return
	}
	l, err := h.svc.AddReview(c.Request.Context(), c.Param("id"), middleware.UserID(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusCreated, l)
}
