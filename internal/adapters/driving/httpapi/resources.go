package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

type resourceDTO struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Subtype    string     `json:"subtype,omitempty"`
	FileName   string     `json:"file_name"`
	Title      string     `json:"title"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toResourceDTO(r domain.Resource) resourceDTO {
	return resourceDTO{
		ID:         r.ID,
		Type:       string(r.Type),
		Subtype:    string(r.Subtype),
		FileName:   r.FileName,
		Title:      r.Title,
		RecordedAt: r.RecordedAt,
		CreatedAt:  r.CreatedAt,
	}
}

func (s *Server) handleListResources(c echo.Context) error {
	resources, err := s.resources.ListResources(c.Request().Context())
	if err != nil {
		return err
	}

	dtos := make([]resourceDTO, len(resources))
	for i, r := range resources {
		dtos[i] = toResourceDTO(r)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (s *Server) handleGetResource(c echo.Context) error {
	resource, err := s.resources.GetResourceByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toResourceDTO(resource))
}

type priceDTO struct {
	ResourceID string  `json:"resource_id"`
	Free       bool    `json:"free"`
	Price      float64 `json:"price,omitempty"`
	Currency   string  `json:"currency,omitempty"`
}

func (s *Server) handleResourcePrice(c echo.Context) error {
	ctx := c.Request().Context()

	resource, err := s.resources.GetResourceByID(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	price, err := s.auth.ResourcePrice(ctx, resource.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, priceDTO{
		ResourceID: price.ResourceID,
		Free:       price.Free || price.Price <= 0,
		Price:      price.Price,
		Currency:   price.Currency,
	})
}

type purchaseRequest struct {
	ResourceID string  `json:"resource_id"`
	Amount     float64 `json:"amount"`
	PaymentID  string  `json:"payment_id"`
}

type purchaseDTO struct {
	ID         int64     `json:"id"`
	ResourceID string    `json:"resource_id"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *Server) handleListPurchases(c echo.Context) error {
	purchases, err := s.auth.Purchases(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}

	dtos := make([]purchaseDTO, len(purchases))
	for i, p := range purchases {
		dtos[i] = purchaseDTO{
			ID:         p.ID,
			ResourceID: p.ResourceID,
			Amount:     p.Amount,
			Status:     p.Status,
			CreatedAt:  p.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, dtos)
}

func (s *Server) handlePurchase(c echo.Context) error {
	var req purchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	p, err := s.auth.RecordPurchase(c.Request().Context(), currentUserID(c), req.ResourceID, req.Amount, req.PaymentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, purchaseDTO{
		ID:         p.ID,
		ResourceID: p.ResourceID,
		Amount:     p.Amount,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
	})
}

// handleResourceFile serves the original source file. Free resources
// are open to everyone; priced resources require a session with a
// recorded purchase.
func (s *Server) handleResourceFile(c echo.Context) error {
	ctx := c.Request().Context()

	resource, err := s.resources.GetResourceByID(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	userID, _ := maybeUserID(c)
	allowed, err := s.auth.ResourceAccess(ctx, userID, resource.ID)
	if err != nil {
		return err
	}
	if !allowed {
		if _, ok := maybeUserID(c); !ok {
			return domain.ErrUnauthorized
		}
		return echo.NewHTTPError(http.StatusForbidden, "purchase required")
	}

	return c.File(resource.FilePath)
}
