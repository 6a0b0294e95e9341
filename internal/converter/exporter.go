package converter

import (
	"path/filepath"

	"github.com/ginjaninja78/sales-order-splitter/internal/types"
	"github.com/ginjaninja78/sales-order-splitter/pkg/utils"
)

// exportOrder writes one finished order to
// <ordersDir>/Order<order id>_<customer>.xlsx and returns the path.
// The customer name is taken from the first line after sorting.
func (c *Converter) exportOrder(order *types.OrderPartition) (string, error) {
	fileName := utils.OrderFileName(order.OrderID, order.CustomerName())
	path := filepath.Join(c.ordersDir, fileName)

	header, rows := RenderOrder(order, c.cfg.GrandTotalLabel)
	if err := c.writer.WriteSheet(path, c.cfg.SheetName, header, rows); err != nil {
		return "", err
	}

	return path, nil
}
