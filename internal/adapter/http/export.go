package http

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quakewatch/quake-feed-aggregator/internal/domain"
)

// handleExportCSV streams a window's events as a CSV download, newest first.
func (s *Server) handleExportCSV(c *gin.Context) {
	w, ok := s.window(c)
	if !ok {
		return
	}
	events, ok := s.store.Events(w)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot available yet"})
		return
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TimeMillis() > events[j].TimeMillis()
	})

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=earthquakes_%s.csv", w))
	c.Header("Content-Type", "text/csv")

	writer := csv.NewWriter(c.Writer)
	writer.Write([]string{"time_utc", "id", "place", "magnitude", "depth_km", "lat", "lon", "tsunami", "severity"}) //nolint:errcheck

	for _, e := range events {
		timeStr := ""
		if t, ok := e.When(); ok {
			timeStr = t.Format(time.RFC3339)
		}
		magStr := ""
		if m, ok := e.Mag(); ok {
			magStr = strconv.FormatFloat(m, 'f', 2, 64)
		}
		tsunami := "no"
		if e.Tsunami {
			tsunami = "yes"
		}

		writer.Write([]string{ //nolint:errcheck
			timeStr,
			e.ID,
			e.Place,
			magStr,
			strconv.FormatFloat(e.DepthKm, 'f', 1, 64),
			strconv.FormatFloat(e.Lat, 'f', 4, 64),
			strconv.FormatFloat(e.Lon, 'f', 4, 64),
			tsunami,
			domain.Severity(e),
		})
	}
	writer.Flush()
}
