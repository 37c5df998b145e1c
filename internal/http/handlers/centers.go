package handlers

import (
	"net/http"
)

type centerResponse struct {
	CenterID int64  `json:"centerID"`
	Name     string `json:"name"`
	Address  string `json:"address"`
}

func (a *App) DonationCentersList(w http.ResponseWriter, r *http.Request) {
	centers, err := a.Centers.ListDonationCenters(r.Context())
	if err != nil {
		a.log(r).Error().Err(err).Msg("list donation centers")
		a.error(w, http.StatusInternalServerError, "Server error")
		return
	}
	out := make([]centerResponse, 0, len(centers))
	for _, c := range centers {
		out = append(out, centerResponse{CenterID: c.ID, Name: c.Name, Address: c.Address})
	}
	a.json(w, http.StatusOK, out)
}
