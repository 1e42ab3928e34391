package app

import (
	"net/http"
	"net/url"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionChangeLog(t *testing.T) {
	t.Run("should log each persisted create with its collection and ids", func(t *testing.T) {
		// given
		hook := test.NewLocal(log.StandardLogger())
		level := log.GetLevel()
		log.SetLevel(log.DebugLevel)
		t.Cleanup(func() {
			log.SetLevel(level)
			hook.Reset()
		})
		r, deps := setupAppTest(t)
		hook.Reset()

		// when
		rr := post(r, "/p/jadwal/schedules", url.Values{
			"title": {"Upacara"},
			"date":  {"2025-08-17"},
			"time":  {"07:00"},
		})

		// then
		require.Equal(t, http.StatusSeeOther, rr.Code)
		require.Equal(t, 1, deps.Schedules.Len())
		var changes []*log.Entry
		for _, entry := range hook.AllEntries() {
			if entry.Message == "collection changed" {
				changes = append(changes, entry)
			}
		}
		require.Len(t, changes, 1)
		assert.Equal(t, log.DebugLevel, changes[0].Level)
		assert.Equal(t, "schedules", changes[0].Data["collection"])
		assert.Equal(t, "create", changes[0].Data["op"])
		assert.Equal(t, []string{deps.Schedules.All()[0].Id}, changes[0].Data["ids"])
	})
}
