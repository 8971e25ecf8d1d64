// internal/sandbox/accounts.go
package sandbox

import (
	"net/http"
	"sort"
	"strings"

	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/gin-gonic/gin"
)

func (s *Sandbox) login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.users[req.Username]
	if !ok || record.password != req.Password {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password"})
		return
	}

	token := newToken()
	s.tokens[token] = req.Username

	c.JSON(http.StatusOK, gin.H{"token": token, "user": record.user})
}

func (s *Sandbox) logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Token ")

	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"detail": "Logged out."})
}

func (s *Sandbox) profile(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (s *Sandbox) listUsers(c *gin.Context) {
	search := c.Query("search")

	s.mu.Lock()
	users := make([]domain.User, 0, len(s.users))
	for _, record := range s.users {
		if matchesSearch(search, record.user.Username, record.user.FirstName, record.user.LastName) {
			users = append(users, record.user)
		}
	}
	s.mu.Unlock()

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	c.JSON(http.StatusOK, page(c, users))
}
