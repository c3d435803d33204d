// Copyright (c) 2026 Funtush. All rights reserved.

package movie

import (
	"time"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/pkg/slice"
)

// # Review Aggregator

// Reviewer is the snapshot of the account posting a review.
type Reviewer struct {
	ID    string
	Name  string
	Image string
}

// HasReviewFrom reports whether userID already reviewed the movie.
func (movie *Movie) HasReviewFrom(userID string) bool {
	for _, review := range movie.Reviews {
		if review.UserID == userID {
			return true
		}
	}
	return false
}

/*
AddReview returns a copy of movie with a new review appended.

Description: A user may review a movie once. On success the review count is
the new list length and the rate is the plain mean of all ratings at full
precision. Rating bounds are the caller's policy and are not checked here.

Parameters:
  - movie: *Movie (left untouched)
  - reviewer: Reviewer (id plus name and image snapshots)
  - rating: float64
  - comment: string
  - now: time.Time (review timestamp)

Returns:
  - *Movie: the updated copy
  - error: ALREADY_REVIEWED when reviewer.ID already has a review
*/
func AddReview(movie *Movie, reviewer Reviewer, rating float64, comment string, now time.Time) (*Movie, error) {
	if movie.HasReviewFrom(reviewer.ID) {
		return nil, apperr.AlreadyReviewed()
	}

	updated := movie.Clone()
	updated.Reviews = append(updated.Reviews, Review{
		UserID:    reviewer.ID,
		UserName:  reviewer.Name,
		UserImage: reviewer.Image,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
	})
	updated.syncReviewStats()

	return updated, nil
}

// AverageRating returns the mean rating, or fallback when there are no reviews.
func AverageRating(reviews []Review, fallback float64) float64 {
	if len(reviews) == 0 {
		return fallback
	}

	sum := slice.Reduce(reviews, 0.0, func(total float64, review Review) float64 {
		return total + review.Rating
	})
	return sum / float64(len(reviews))
}

// syncReviewStats re-derives the count and rate from the embedded reviews.
// A movie without reviews keeps its stored rate.
func (movie *Movie) syncReviewStats() {
	movie.NumberOfReviews = len(movie.Reviews)
	movie.Rate = AverageRating(movie.Reviews, movie.Rate)
}
