package mysql

// pos is the row's position in the imported file; batches land out of order.
// review_id is the natural key.
const createReviewsSQL = `
CREATE TABLE IF NOT EXISTS reviews (
  seq         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
  pos         BIGINT UNSIGNED NOT NULL,
  review_id   VARCHAR(64)     NOT NULL,
  review_body TEXT            NOT NULL,
  location    VARCHAR(128)    NOT NULL,
  created_at  DATETIME        NOT NULL,
  PRIMARY KEY (seq),
  UNIQUE KEY uq_reviews_review_id (review_id),
  KEY idx_reviews_pos (pos),
  KEY idx_reviews_location_created (location, created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

const insertReviewsPrefix = "INSERT INTO reviews\n  (pos, review_id, review_body, location, created_at)\nVALUES "

// Re-importing a row keeps its original pos.
const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  review_body = VALUES(review_body),\n" +
	"  location    = VALUES(location),\n" +
	"  created_at  = VALUES(created_at)\n"

const listReviewsSQL = `
SELECT review_id, review_body, location, created_at
FROM reviews
ORDER BY pos, seq
`

const countReviewsSQL = `SELECT COUNT(*) FROM reviews`
