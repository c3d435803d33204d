// Copyright (c) 2026 Funtush. All rights reserved.

/*
Package account handles everything a signed-in user does with their own
account, and admin user management.

  - Profile: name, email and image updates, password changes, self deletion.
  - Favourites: an ordered set of liked movie ids.
  - Administration: listing and deleting accounts, admins exempt.

# Architecture

The package shares the auth package's Repository and User entity. Every
read-modify-write runs under a per-user lock with an optimistic version check.
*/
package account

import (
	"slices"

	"github.com/parthibdhar/Funtush-Server/internal/catalog/movie"
	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/pkg/slice"
)

// # Favorites Manager

/*
AddFavorite appends movieID to the liked list.

Returns:
  - []string: a new list; liked is never modified
  - error: ALREADY_LIKED when movieID is already present
*/
func AddFavorite(liked []string, movieID string) ([]string, error) {
	if slices.Contains(liked, movieID) {
		return nil, apperr.AlreadyLiked()
	}

	updated := make([]string, len(liked), len(liked)+1)
	copy(updated, liked)
	return append(updated, movieID), nil
}

// RemoveFavorite drops movieID from the liked list. NOT_FOUND when absent.
func RemoveFavorite(liked []string, movieID string) ([]string, error) {
	index := slices.Index(liked, movieID)
	if index < 0 {
		return nil, apperr.NotFound("Favorite")
	}
	return slices.Delete(slices.Clone(liked), index, index+1), nil
}

// ClearFavorites returns the empty liked list.
func ClearFavorites() []string {
	return []string{}
}

/*
ResolveFavorites orders movies by the liked list.

Description: Ids with no matching movie are dropped, so deleted movies
silently leave the list view.
*/
func ResolveFavorites(liked []string, movies []*movie.Movie) []*movie.Movie {
	byID := slice.IndexBy(movies, func(m *movie.Movie) string { return m.ID })

	resolved := make([]*movie.Movie, 0, len(liked))
	for _, id := range liked {
		if m, found := byID[id]; found {
			resolved = append(resolved, m)
		}
	}
	return resolved
}
