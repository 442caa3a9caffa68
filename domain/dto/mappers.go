package dto

import (
	"github.com/google/uuid"

	"couplesync/domain/models"
)

func UserToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Avatar:      user.Avatar,
		CreatedAt:   user.CreatedAt,
	}
}

func CoupleToCoupleResponse(couple *models.Couple) *CoupleResponse {
	if couple == nil {
		return nil
	}
	resp := &CoupleResponse{
		ID:         couple.ID,
		InviteCode: couple.InviteCode,
		Partner1ID: couple.Partner1ID,
		Partner2ID: couple.Partner2ID,
		CreatedAt:  couple.CreatedAt,
	}
	if couple.Partner1.ID != uuid.Nil {
		resp.Partner1 = UserToUserResponse(&couple.Partner1)
	}
	if couple.Partner2 != nil {
		resp.Partner2 = UserToUserResponse(couple.Partner2)
	}
	return resp
}

func TaskToTaskResponse(task *models.Task) *TaskResponse {
	if task == nil {
		return nil
	}
	return &TaskResponse{
		ID:         task.ID,
		CoupleID:   task.CoupleID,
		Title:      task.Title,
		Priority:   task.Priority,
		AssignedTo: task.AssignedTo,
		Completed:  task.Completed,
		CreatedBy:  task.CreatedBy,
		CreatedAt:  task.CreatedAt,
		UpdatedAt:  task.UpdatedAt,
	}
}

func TasksToTaskListResponse(tasks []*models.Task) *TaskListResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = *TaskToTaskResponse(task)
	}
	return &TaskListResponse{Tasks: responses}
}
