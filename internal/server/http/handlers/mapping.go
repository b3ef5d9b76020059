package handlers

import (
	"github.com/polkiloo/ordermart/internal/domain/model"
	"github.com/polkiloo/ordermart/internal/server/http/dto"
)

func toShippingInfo(f dto.ShippingFields) model.ShippingInfo {
	return model.ShippingInfo{
		Name:          f.Name,
		PhoneNumber:   f.PhoneNumber,
		StreetAddress: f.StreetAddress,
		City:          f.City,
		State:         f.State,
		PostalCode:    f.PostalCode,
	}
}

func toShippingFields(s model.ShippingInfo) dto.ShippingFields {
	return dto.ShippingFields{
		Name:          s.Name,
		PhoneNumber:   s.PhoneNumber,
		StreetAddress: s.StreetAddress,
		City:          s.City,
		State:         s.State,
		PostalCode:    s.PostalCode,
	}
}

func toHeaderResponse(h model.OrderHeader) dto.OrderHeaderResponse {
	return dto.OrderHeaderResponse{
		ID:              h.ID,
		UserID:          h.UserID,
		ShippingFields:  toShippingFields(h.ShippingInfo),
		OrderTotal:      h.OrderTotal,
		OrderDate:       h.OrderDate,
		ShippingDate:    h.ShippingDate,
		PaymentDueDate:  h.PaymentDueDate,
		Carrier:         h.Carrier,
		TrackingNumber:  h.TrackingNumber,
		PaymentIntentID: h.PaymentIntentID,
		OrderStatus:     string(h.OrderStatus),
		PaymentStatus:   string(h.PaymentStatus),
	}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	details := make([]dto.OrderDetailResponse, 0, len(o.Details))
	for _, d := range o.Details {
		line := dto.OrderDetailResponse{
			ProductID: d.ProductID,
			Count:     d.Count,
			Price:     d.Price,
			LineTotal: d.LineTotal(),
		}
		if d.Product != nil {
			line.Title = d.Product.Title
		}
		details = append(details, line)
	}
	return dto.OrderResponse{OrderHeaderResponse: toHeaderResponse(o.Header), Details: details}
}
