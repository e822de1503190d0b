package database

const (
	// Stamp queries
	querySelectStamps = `
		SELECT id, design, label, color, value, image_ref, created_at
		FROM stamps
		ORDER BY position`

	queryInsertStamp = `
		INSERT INTO stamps (position, id, design, label, color, value, image_ref, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	queryDeleteStamps = `DELETE FROM stamps`

	// Mail history queries
	querySelectMail = `
		SELECT stamp_id, recipient, address, sent_at
		FROM mail_history
		ORDER BY position`

	queryInsertMail = `
		INSERT INTO mail_history (position, stamp_id, recipient, address, sent_at)
		VALUES (?, ?, ?, ?, ?)`

	queryDeleteMail = `DELETE FROM mail_history`

	// Order queries
	querySelectOrders = `
		SELECT order_id, stamp_id, quantity, total_cost, shipping_address, placed_at
		FROM orders
		ORDER BY position`

	queryInsertOrder = `
		INSERT INTO orders (position, order_id, stamp_id, quantity, total_cost, shipping_address, placed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	queryDeleteOrders = `DELETE FROM orders`
)
