package orderio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMaterializesQuantityIntoSequentialItemIDs(t *testing.T) {
	csvData := "Order,Product,Quantity,Length,Width,Height,Weight\n" +
		"16129,93215,3,290,240,170,1.36\n"
	res, err := Read(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, res.Orders, 1)
	require.Len(t, res.Orders[0].Items, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{res.Orders[0].Items[0].ItemID, res.Orders[0].Items[1].ItemID, res.Orders[0].Items[2].ItemID})
}

func TestReadSkipsShortRows(t *testing.T) {
	csvData := "Order,Product,Quantity,Length,Width,Height,Weight\n" +
		"1,p1,1,100,100,100\n" + // only 6 fields
		"1,p2,1,100,100,100,1.0\n"
	res, err := Read(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, res.Orders, 1)
	require.Len(t, res.Orders[0].Items, 1)
	assert.NotEmpty(t, res.Warnings)
}

func TestReadGroupsMultipleOrders(t *testing.T) {
	csvData := "Order,Product,Quantity,Length,Width,Height,Weight\n" +
		"2,p1,1,100,100,100,1.0\n" +
		"1,p1,1,100,100,100,1.0\n"
	res, err := Read(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, res.Orders, 2)
	assert.Equal(t, "1", res.Orders[0].OrderID)
	assert.Equal(t, "2", res.Orders[1].OrderID)
}

func TestReadWithoutHeaderTreatsFirstRowAsData(t *testing.T) {
	csvData := "1,p1,2,100,100,100,1.0\n"
	res, err := Read(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, res.Orders, 1)
	assert.Len(t, res.Orders[0].Items, 2)
}
