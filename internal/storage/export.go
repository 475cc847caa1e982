package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rainsdm/atmotraj/internal/predict"
)

// ExportData is the flat JSON form of one run, for downstream tools.
type ExportData struct {
	Model      string             `json:"model"`
	Body       string             `json:"body"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Impacted   bool               `json:"impacted"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Metrics    map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, model, bodyName, integrator string, dt, duration float64, result *predict.Result) error {
	data := ExportData{
		Model:      model,
		Body:       bodyName,
		Integrator: integrator,
		Dt:         dt,
		Duration:   duration,
		Steps:      result.StepsTaken,
		Impacted:   result.Impacted,
		Times:      result.Times,
		States:     make([][]float64, len(result.States)),
		Metrics:    result.Metrics,
	}

	for i, s := range result.States {
		data.States[i] = s
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSONFile(path, model, bodyName, integrator string, dt, duration float64, result *predict.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, model, bodyName, integrator, dt, duration, result)
}
