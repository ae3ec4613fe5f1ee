package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sky-scheduling/models"
)

func TestDescribeAccess(t *testing.T) {
	assert.Equal(t, "read only", describeAccess(&models.User{}))
	assert.Equal(t, "mark done, hold orders", describeAccess(&models.User{AccessFlags: models.MarkAsDone | models.HoldOrders}))
	assert.Contains(t, describeAccess(&models.User{AccessFlags: models.AllAccess}), "set privileges")
}

func TestDescribeJob(t *testing.T) {
	ship := time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	job := models.Job{
		JobID:           "425000",
		CustomerName:    "Harbor Marine",
		ShipDate:        &ship,
		PrintingCompany: models.AmericanAccents,
		OrderDetailList: []models.OrderDetail{{ProductID: "N10", NumColors: 2, Quantity: 500}},
	}

	text := describeJob(&job)
	assert.Contains(t, text, "425000")
	assert.Contains(t, text, "On Hold")
	assert.Contains(t, text, "American Accents")
	assert.Contains(t, text, "N10")

	job.OrderDetailList = nil
	assert.Contains(t, describeJob(&job), "No line items")
}

func TestExportPath(t *testing.T) {
	assert.Equal(t, "exports/production-2016-02-28.xlsx", exportPath(time.Date(2016, time.February, 28, 0, 0, 0, 0, time.UTC)))
}
