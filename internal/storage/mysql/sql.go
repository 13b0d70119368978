package mysql

// Note: `text` is reserved; keep it quoted everywhere.

// Keyset pagination over the primary key; aspects IS NULL marks unrated rows.
const listUnratedSQL = "SELECT id, property_id, `text`\n" +
	"FROM reviews\n" +
	"WHERE id > ?\n" +
	"  AND aspects IS NULL\n" +
	"  AND `text` IS NOT NULL AND TRIM(`text`) <> ''\n" +
	"ORDER BY id\n" +
	"LIMIT ?"

const updateAspectsSQL = `
UPDATE reviews
SET aspects = ?
WHERE id = ?
`

const getReviewSQL = "SELECT id, property_id, `text`, aspects FROM reviews WHERE id = ?"

const insertReviewSQL = "INSERT INTO reviews (property_id, `text`) VALUES (?, ?)"
