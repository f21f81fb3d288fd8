package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteApplyEvent records one preset application as a preset_applied
// point. The write is non-blocking; data is batched and sent
// asynchronously. Dropped silently when the client is not connected.
func (c *Client) WriteApplyEvent(presetID string, presetType string, entities int, failures int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"preset_applied",
		map[string]string{
			"preset_id":   presetID,
			"preset_type": presetType,
		},
		map[string]interface{}{
			"entities": entities,
			"failures": failures,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteDocumentMetric records the current shape of the preset document
// after a mutation. Useful for dashboards tracking library growth.
func (c *Client) WriteDocumentMetric(categories int, presets int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"preset_document",
		map[string]string{},
		map[string]interface{}{
			"categories": categories,
			"presets":    presets,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
