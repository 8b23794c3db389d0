// Package anilist provides a client for the Anilist GraphQL API.
package anilist

import "fmt"

// mangaSubquery defines the common GraphQL selection set for manga metadata retrieval.
var mangaSubquery = `
id
idMal
title {
	romaji
	english
	native
}
description(asHtml: false)
tags {
	name
	description
	rank
}
genres
coverImage {
	extraLarge
	large
	medium
	color
}
bannerImage
characters (page: 1, perPage: 10, role: MAIN) {
	nodes {
		id
		name {
			full
			native
		}
	}
}
startDate {
	year
	month
	day
}
endDate {
	year
	month
	day
}
staff {
	edges {
	  role
	  node {
		name {
		  full
		}
	  }
	}
}
status
synonyms
siteUrl
chapters
volumes
countryOfOrigin
externalLinks {
	url
}
averageScore
`

// searchByNameQuery defines the GraphQL query for searching manga by their title.
var searchByNameQuery = fmt.Sprintf(`
query ($query: String) {
	Page (page: 1, perPage: 30) {
		media (search: $query, type: MANGA) {
			%s
		}
	}
}
`, mangaSubquery)

// searchByIDQuery defines the GraphQL query for retrieving a specific manga by its identifier.
var searchByIDQuery = fmt.Sprintf(`
query ($id: Int) {
	Media (id: $id, type: MANGA) {
		%s
	}
}`, mangaSubquery)
