package handlers

import "service-assignment/internal/domain"

func resolutionToResponse(res domain.Resolution) resolutionDTO {
	return resolutionDTO{
		Applied: res.Applied,
		Status:  string(res.Status),
	}
}

func assignmentToResponse(a domain.Assignment) assignmentDTO {
	return assignmentDTO{
		ID:           a.ID,
		OrderID:      a.OrderID,
		RestaurantID: a.RestaurantID,
		Status:       string(a.Status),
		Attempt:      a.Attempt,
		ExpiresAt:    a.ExpiresAt,
		CreatedAt:    a.CreatedAt,
		RespondedAt:  a.RespondedAt,
	}
}

func orderToResponse(o domain.Order) orderDTO {
	return orderDTO{
		ID:             o.ID,
		CustomerID:     o.CustomerID,
		TotalCents:     o.TotalCents,
		Status:         string(o.Status),
		RejectionCount: o.RejectionCount,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func historyToResponse(list []domain.HistoryEntry) []historyEntryDTO {
	out := make([]historyEntryDTO, 0, len(list))
	for _, e := range list {
		out = append(out, historyEntryDTO{
			RestaurantID: e.RestaurantID,
			Attempt:      e.Attempt,
			Status:       e.Status,
			Notes:        e.Notes,
			RecordedAt:   e.RecordedAt,
		})
	}
	return out
}
