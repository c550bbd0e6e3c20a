package repository

import (
	"context"
	"time"

	"setlist-api/internal/setlist/models"

	"github.com/stretchr/testify/suite"
)

// StoreSuite runs the same behavioral checks against every adapter. Adapter
// test files embed it and provide SetupTest/TearDownTest.
type StoreSuite struct {
	suite.Suite
	store   Store
	ctx     context.Context
	testNow time.Time
}

func (s *StoreSuite) catalog() []models.Song {
	return []models.Song{
		models.NewSong("Life Beyond Earth", "", models.YearPtr(2008)),
		models.NewSong("Numbers", "", models.YearPtr(2008)),
		models.NewSong("Untitled Jam", "Guest Band", nil),
	}
}

func (s *StoreSuite) TestEmptyStore() {
	empty, err := s.store.IsEmpty(s.ctx)
	s.Require().NoError(err)
	s.True(empty)

	songs, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(songs)
}

func (s *StoreSuite) TestInsertDefaultsAndListAll() {
	s.Require().NoError(s.store.InsertDefaults(s.ctx, s.catalog()))

	empty, err := s.store.IsEmpty(s.ctx)
	s.Require().NoError(err)
	s.False(empty)

	songs, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(songs, 3)

	s.Equal("Life Beyond Earth", songs[0].Title)
	s.Equal("Numbers", songs[1].Title)
	s.Equal("Untitled Jam", songs[2].Title)

	s.Equal(models.DefaultArtist, songs[0].Artist)
	s.Require().NotNil(songs[0].Year)
	s.Equal(2008, *songs[0].Year)
	s.False(songs[0].Performed)

	s.Equal("Guest Band", songs[2].Artist)
	s.Nil(songs[2].Year)
}

func (s *StoreSuite) TestInsertDefaultsSkipsExistingTitles() {
	s.Require().NoError(s.store.InsertDefaults(s.ctx, s.catalog()))
	s.Require().NoError(s.store.SetPerformed(s.ctx, "Numbers", true))

	s.Require().NoError(s.store.InsertDefaults(s.ctx, s.catalog()))

	songs, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(songs, 3)

	song, err := s.store.FindByTitle(s.ctx, "Numbers")
	s.Require().NoError(err)
	s.True(song.Performed)
}

func (s *StoreSuite) TestFindByTitle() {
	s.Require().NoError(s.store.InsertDefaults(s.ctx, s.catalog()))

	song, err := s.store.FindByTitle(s.ctx, "Numbers")
	s.Require().NoError(err)
	s.Equal("Numbers", song.Title)

	_, err = s.store.FindByTitle(s.ctx, "numbers")
	s.ErrorIs(err, ErrNotFound)

	_, err = s.store.FindByTitle(s.ctx, "Unknown Song")
	s.ErrorIs(err, ErrNotFound)
}

func (s *StoreSuite) TestSetPerformed() {
	s.Require().NoError(s.store.InsertDefaults(s.ctx, s.catalog()))

	s.Require().NoError(s.store.SetPerformed(s.ctx, "Numbers", true))
	song, err := s.store.FindByTitle(s.ctx, "Numbers")
	s.Require().NoError(err)
	s.True(song.Performed)

	s.Require().NoError(s.store.SetPerformed(s.ctx, "Numbers", false))
	song, err = s.store.FindByTitle(s.ctx, "Numbers")
	s.Require().NoError(err)
	s.False(song.Performed)

	s.ErrorIs(s.store.SetPerformed(s.ctx, "Unknown Song", true), ErrNotFound)
}

func (s *StoreSuite) TestCompareAndSetPerformed() {
	s.Require().NoError(s.store.InsertDefaults(s.ctx, s.catalog()))

	s.Require().NoError(s.store.CompareAndSetPerformed(s.ctx, "Numbers", false, true))
	s.ErrorIs(s.store.CompareAndSetPerformed(s.ctx, "Numbers", false, true), ErrConflict)
	s.ErrorIs(s.store.CompareAndSetPerformed(s.ctx, "Unknown Song", false, true), ErrNotFound)

	song, err := s.store.FindByTitle(s.ctx, "Numbers")
	s.Require().NoError(err)
	s.True(song.Performed)
}

func (s *StoreSuite) TestAddSong() {
	song := models.NewSong("Encore", "", models.YearPtr(2010))

	s.Require().NoError(s.store.AddSong(s.ctx, song))
	s.ErrorIs(s.store.AddSong(s.ctx, song), ErrDuplicateSong)

	found, err := s.store.FindByTitle(s.ctx, "Encore")
	s.Require().NoError(err)
	s.Equal(2010, *found.Year)
}

func (s *StoreSuite) TestSessions() {
	session := models.NewSession("tok-1", models.RoleHost, s.testNow)
	s.Require().NoError(s.store.Insert(s.ctx, session))

	found, err := s.store.FindActiveByToken(s.ctx, "tok-1")
	s.Require().NoError(err)
	s.Equal("tok-1", found.Token)
	s.Equal(models.RoleHost, found.Role)
	s.True(found.Active)
	s.True(s.testNow.Equal(found.CreatedAt))

	_, err = s.store.FindActiveByToken(s.ctx, "tok")
	s.ErrorIs(err, ErrNotFound)

	s.ErrorIs(s.store.Insert(s.ctx, session), ErrDuplicateToken)
}

func (s *StoreSuite) TestInactiveSessionIsNotFound() {
	s.Require().NoError(s.store.Insert(s.ctx, models.NewSession("tok-2", models.RoleGuest, s.testNow)))
	s.Require().NoError(s.store.SetActive(s.ctx, "tok-2", false))

	_, err := s.store.FindActiveByToken(s.ctx, "tok-2")
	s.ErrorIs(err, ErrNotFound)

	s.Require().NoError(s.store.SetActive(s.ctx, "tok-2", true))
	_, err = s.store.FindActiveByToken(s.ctx, "tok-2")
	s.NoError(err)

	s.ErrorIs(s.store.SetActive(s.ctx, "missing", false), ErrNotFound)
}

func (s *StoreSuite) TestDiagnostics() {
	s.NoError(s.store.Ping(s.ctx))
	s.NotEmpty(s.store.Driver())

	s.Require().NoError(s.store.InsertDefaults(s.ctx, s.catalog()))
	s.Require().NoError(s.store.Insert(s.ctx, models.NewSession("tok-3", models.RoleHost, s.testNow)))

	names, err := s.store.Collections(s.ctx)
	s.Require().NoError(err)
	s.Contains(names, SongCollection)
	s.Contains(names, SessionCollection)
}
